package metrics

import (
	"fmt"

	"dfx-site/cmd/root"
	"dfx-site/internal/config"
	"dfx-site/internal/utils"
	"dfx-site/services"

	"github.com/spf13/cobra"
)

var (
	pushGatewayAddr string
	push            bool
)

func init() {
	root.RootCmd.AddCommand(Cmd)
	Cmd.Flags().SortFlags = false
	Cmd.Flags().BoolVarP(&push, "push", "p", false, "推送到Pushgateway")
	Cmd.Flags().StringVarP(&pushGatewayAddr, "addr", "a", "", "Pushgateway地址")
}

var Cmd = &cobra.Command{
	Use:   "metrics",
	Short: "统计全站下载链接状态",
	Long:  "解析主页、extras页和博物馆中的所有下载链接，按平台和状态统计；可选推送到Pushgateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := services.NewSiteFromConfig(&config.Config)
		if err != nil {
			return err
		}
		audit := services.AuditLinks(site)

		utils.PrintFormat(utils.ToOrderedMaps(audit))

		if !push {
			return nil
		}
		if pushGatewayAddr == "" {
			pushGatewayAddr = config.Config.Metrics.Pushgateway
		}
		if err := services.PushLinkAudit(pushGatewayAddr, audit); err != nil {
			return fmt.Errorf("指标推送失败: %w", err)
		}
		fmt.Println("指标已推送到", pushGatewayAddr)
		return nil
	},
}
