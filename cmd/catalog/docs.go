package catalog

import (
	"dfx-site/cmd/root"

	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List documentation files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := loadSite()
		if err != nil {
			return err
		}
		printRows(site.Docs())
		return nil
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List source code packages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := loadSite()
		if err != nil {
			return err
		}
		printRows(site.SourcePackages())
		return nil
	},
}

func init() {
	root.RootCmd.AddCommand(docsCmd)
	root.RootCmd.AddCommand(sourcesCmd)
}
