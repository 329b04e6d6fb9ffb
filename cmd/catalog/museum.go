package catalog

import (
	"fmt"

	"dfx-site/cmd/root"
	"dfx-site/services"

	"github.com/spf13/cobra"
)

var museumCmd = &cobra.Command{
	Use:   "museum [software name]",
	Short: "List archived releases",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return listMuseum(args)
	},
}

type Museum_Columns struct {
	Software string `json:"software"`
	Version  string `json:"version"`
	Date     string `json:"date"`
	Windows  string `json:"windows"`
	Mac      string `json:"mac"`
	OldMac   string `json:"oldmac"`
	Source   string `json:"source"`
}

func listMuseum(args []string) error {
	site, err := loadSite()
	if err != nil {
		return err
	}
	var sections []services.MuseumSection
	if len(args) > 0 {
		sec, err := site.MuseumSection(args[0])
		if err != nil {
			return fmt.Errorf("software named '%s': %w", args[0], err)
		}
		sections = append(sections, *sec)
	} else {
		sections = site.Museum()
	}

	var rows []Museum_Columns
	for _, sec := range sections {
		for _, r := range sec.Rows {
			// 单元格顺序同models.Platforms: Windows, Mac OS X, Mac OS 8/9, Source
			rows = append(rows, Museum_Columns{
				Software: sec.Name,
				Version:  r.Version,
				Date:     r.Date,
				Windows:  r.Downloads[0].State,
				Mac:      r.Downloads[1].State,
				OldMac:   r.Downloads[2].State,
				Source:   r.Downloads[3].State,
			})
		}
	}
	printRows(rows)
	return nil
}

func init() {
	root.RootCmd.AddCommand(museumCmd)
}
