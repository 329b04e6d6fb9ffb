package catalog

import (
	"fmt"

	"dfx-site/cmd/root"
	"dfx-site/internal/models"
	"dfx-site/services"

	"github.com/spf13/cobra"
)

var hostFilters = map[models.FilterKey]*bool{}

var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "List plugin host applications",
	Long:  "List the host compatibility table. Each filter flag keeps only the hosts with known support for that column.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listHosts()
	},
}

/**
 *	Fields displayed in list format
 */
type Host_Columns struct {
	Name        string `json:"name"`
	AU          string `json:"au"`
	VST         string `json:"vst"`
	Tempo       string `json:"tempo"`
	MIDI        string `json:"midi"`
	Instruments string `json:"instruments"`
	Mac         string `json:"mac"`
	Windows     string `json:"windows"`
	Free        bool   `json:"free"`
}

func listHosts() error {
	site, err := loadSite()
	if err != nil {
		return err
	}
	var keys []models.FilterKey
	for _, k := range models.FilterKeys {
		if *hostFilters[k] {
			keys = append(keys, k)
		}
	}

	hosts := services.BuildListing(site.Catalog().Hosts, models.NewFilterSet(keys...))
	if len(hosts) == 0 {
		fmt.Println("No hosts found")
		return nil
	}
	rows := make([]Host_Columns, 0, len(hosts))
	for _, h := range hosts {
		rows = append(rows, Host_Columns{
			Name:        h.Name,
			AU:          h.AU.String(),
			VST:         h.VST.String(),
			Tempo:       h.Tempo.String(),
			MIDI:        h.MIDI.String(),
			Instruments: h.Instruments.String(),
			Mac:         h.Mac.String(),
			Windows:     h.Windows.String(),
			Free:        h.Free,
		})
	}
	printRows(rows)
	fmt.Printf("%d of %d hosts\n", len(hosts), len(site.Catalog().Hosts))
	return nil
}

func init() {
	root.RootCmd.AddCommand(hostsCmd)
	hostsCmd.Flags().SortFlags = false
	for _, k := range models.FilterKeys {
		hostFilters[k] = hostsCmd.Flags().Bool(string(k), false, fmt.Sprintf("only hosts with %s support", k))
	}
	hostsCmd.Example = `  dfx-site hosts
  dfx-site hosts --au --tempo`
}
