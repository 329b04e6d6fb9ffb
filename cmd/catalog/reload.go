package catalog

import (
	"fmt"

	"dfx-site/cmd/root"
	"dfx-site/internal/auth"
	"dfx-site/internal/config"
	"dfx-site/internal/models"
	"dfx-site/internal/rpc"

	"github.com/spf13/cobra"
)

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload the catalog of a running server",
	Long:  `Connect to the running dfx-site server and call its reload API.
Over TCP the request carries a token signed with server.admin_secret;
a Unix socket address needs no secret.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := rpc.ConfigFromAddress(config.Config.Server.Address)
		if secret := config.Config.Server.AdminSecret; secret != "" {
			token, err := auth.SignAdminToken(secret, auth.DefaultTokenTTL)
			if err != nil {
				return err
			}
			cfg.Token = token
		}
		client := rpc.NewHTTPClient(cfg)
		defer client.Close()

		resp, err := client.Post("/api/v1/reload", nil)
		if err != nil {
			return fmt.Errorf("failed to call dfx-site API: %w", err)
		}
		if resp.Error != "" {
			return fmt.Errorf("dfx-site API returned error(%d): %s", resp.StatusCode, resp.Error)
		}
		fmt.Printf("Successfully reloaded catalog, status code: %d\n", resp.StatusCode)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show health of a running server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := rpc.NewHTTPClient(rpc.ConfigFromAddress(config.Config.Server.Address))
		defer client.Close()

		resp, err := client.Get("/healthz", nil)
		if err != nil {
			return fmt.Errorf("failed to call dfx-site API: %w", err)
		}
		if resp.Error != "" {
			return fmt.Errorf("dfx-site API returned error(%d): %s", resp.StatusCode, resp.Error)
		}
		var health models.HealthResponse
		if err := resp.Decode(&health); err != nil {
			return err
		}
		fmt.Printf("Status: %s\n", health.Status)
		fmt.Printf("Version: %s\n", health.Version)
		fmt.Printf("Uptime: %s\n", health.Uptime)
		fmt.Printf("Requests: %d (errors: %d)\n", health.Metrics.TotalRequests, health.Metrics.ErrorRequests)
		fmt.Printf("Catalog: %d software, %d museum items, %d hosts (loaded %s)\n",
			health.Metrics.Software, health.Metrics.MuseumItems, health.Metrics.Hosts, health.Metrics.CatalogLoaded)
		return nil
	},
}

func init() {
	root.RootCmd.AddCommand(reloadCmd)
	root.RootCmd.AddCommand(statusCmd)
}
