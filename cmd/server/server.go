package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"dfx-site/cmd/root"
	"dfx-site/controllers"
	"dfx-site/internal/auth"
	"dfx-site/internal/config"
	"dfx-site/internal/logger"
	"dfx-site/internal/middleware"
	"dfx-site/internal/web"
	"dfx-site/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var (
	listenAddr string
	watch      bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动HTTP服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return startServer(ctx, cmd)
	},
}

/**
 * Build the HTTP handler of the site
 * @param {*config.AppConfig} cfg - Application configuration
 * @param {*services.Server} server - Server holding the site
 * @returns {*gin.Engine} Router with pages, API, static files and metrics
 * @returns {error} Template parse error
 */
func NewRouter(cfg *config.AppConfig, server *services.Server) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.MetricsMiddleware())
	router.SetHTMLTemplate(tmpl)

	site := server.Site()
	controllers.NewPageController(site, site.Directory().Fs()).RegisterRoutes(router)
	controllers.NewAPIController(server).RegisterRoutes(router)
	controllers.NewSoftwareController(site).RegisterRoutes(router)
	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	return router, nil
}

func startServer(ctx context.Context, cmd *cobra.Command) error {
	cfg := &config.Config
	if cmd.Flags().Changed("address") {
		cfg.Server.Address = listenAddr
	}
	if cmd.Flags().Changed("watch") {
		cfg.Site.Watch = watch
	}
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	site, err := services.NewSiteFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("加载站点目录失败: %w", err)
	}
	if cfg.Site.Watch {
		if err := site.Store().Watch(ctx); err != nil {
			logger.Warnf("watch catalog '%s' failed: %v", cfg.Site.Content, err)
		}
	}

	server := services.NewServer(cfg, site)
	router, err := NewRouter(cfg, server)
	if err != nil {
		return err
	}

	listeners, err := CreateListeners(ParseListenAddrs(cfg.Server.Address))
	if len(listeners) == 0 {
		if err == nil {
			err = fmt.Errorf("'%s'", cfg.Server.Address)
		}
		return fmt.Errorf("没有可用的监听地址: %w", err)
	}
	return serve(ctx, router, listeners)
}

/**
 * Serve on all listeners until ctx is done
 * @description
 * - The first listener error stops every listener
 * - Shutdown waits up to shutdownTimeout for running requests
 */
func serve(ctx context.Context, handler http.Handler, listeners []net.Listener) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ConnContext:       auth.WithConnNetwork,
	}
	errCh := make(chan error, len(listeners))
	for _, l := range listeners {
		logger.Infof("listening on %s://%s", l.Addr().Network(), l.Addr().String())
		go func(l net.Listener) {
			errCh <- srv.Serve(l)
		}(l)
	}

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
	if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return serveErr
	}
	return nil
}

/**
 * Split the configured address into listen addresses
 * @param {string} address - Comma separated, "unix:" prefix for Unix sockets (e.g. ":8080,unix:/run/dfx.sock")
 * @returns {[]ListenAddr} Listen addresses
 */
func ParseListenAddrs(address string) []ListenAddr {
	var addrs []ListenAddr
	for _, a := range strings.Split(address, ",") {
		a = strings.TrimSpace(a)
		switch {
		case a == "":
		case strings.HasPrefix(a, "unix:"):
			if IsUnixSocketSupported() {
				addrs = append(addrs, ListenAddr{Network: "unix", Address: strings.TrimPrefix(a, "unix:")})
			} else {
				logger.Warnf("unix socket '%s' is not supported on this system", a)
			}
		default:
			addrs = append(addrs, ListenAddr{Network: "tcp", Address: a})
		}
	}
	return addrs
}

func init() {
	root.RootCmd.AddCommand(serverCmd)
	serverCmd.Flags().StringVarP(&listenAddr, "address", "a", "", "监听地址, 例如 :8080 或 unix:/tmp/dfx-site.sock")
	serverCmd.Flags().BoolVarP(&watch, "watch", "w", false, "内容文件变化时自动重新加载")
	serverCmd.Example = `  dfx-site server
  dfx-site server -a :9000 --watch
  dfx-site -c /etc/dfx-site/config.yaml server`
}
