package catalog

import (
	"fmt"

	"dfx-site/cmd/root"
	"dfx-site/internal/models"

	"github.com/spf13/cobra"
)

var downloadsCmd = &cobra.Command{
	Use:   "downloads [software name]",
	Short: "Show current release downloads",
	Long:  "Resolve the current release files of every software, or of the named one, against the site directory.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return listDownloads(args)
	},
}

type Download_Columns struct {
	Software string `json:"software"`
	Platform string `json:"platform"`
	State    string `json:"state"`
	Format   string `json:"format"`
	Size     string `json:"size"`
	Href     string `json:"href"`
}

func listDownloads(args []string) error {
	site, err := loadSite()
	if err != nil {
		return err
	}
	var names []string
	if len(args) > 0 {
		names = args
	} else {
		for _, sw := range site.Catalog().Software {
			names = append(names, sw.Name)
		}
	}

	var rows []Download_Columns
	for _, name := range names {
		links, err := site.CurrentDownloads(name)
		if err != nil {
			return fmt.Errorf("software named '%s': %w", name, err)
		}
		rows = append(rows, downloadRows(name, links)...)
	}
	printRows(rows)
	return nil
}

func downloadRows(name string, links []models.DownloadLink) []Download_Columns {
	rows := make([]Download_Columns, 0, len(links))
	for _, l := range links {
		rows = append(rows, Download_Columns{
			Software: name,
			Platform: l.Platform.String(),
			State:    l.State,
			Format:   l.Format,
			Size:     l.Size,
			Href:     l.Href,
		})
	}
	return rows
}

func init() {
	root.RootCmd.AddCommand(downloadsCmd)
	downloadsCmd.Example = `  dfx-site downloads
  dfx-site downloads "Buffer Override"
  dfx-site downloads skidder`
}
