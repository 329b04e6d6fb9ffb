package config

import (
	"errors"
	"strings"

	"dfx-site/internal/env"

	"github.com/spf13/viper"
)

/**
 * Server configuration parameters
 * @property {string} address - Server listening address (e.g. ":8080")
 * @property {string} mode - Gin mode (debug/release/test)
 * @property {string} admin_secret - HS256 secret of admin tokens, empty allows admin calls only over Unix sockets
 */
type ServerConfig struct {
	Address     string `mapstructure:"address"`
	Mode        string `mapstructure:"mode"`
	AdminSecret string `mapstructure:"admin_secret"`
}

/**
 * Logging configuration
 * @property {string} level - Log level (debug/info/warn/error)
 * @property {string} path - Log file path, "console" for stdout only
 */
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

/**
 * Site content configuration
 * @property {string} root - Directory holding software/, docs/, audio/, museum/ and images
 * @property {string} content - Catalog file (YAML); empty means the built-in catalog
 * @property {string} root_path - URL prefix prepended to every resource link
 * @property {bool} show_donate_links - Render the donate button in software boxes
 * @property {string} contact_anchor - Link target of the "missing, do you have it?" call-out
 * @property {bool} watch - Reload the catalog when the content file changes
 */
type SiteConfig struct {
	Root            string `mapstructure:"root"`
	Content         string `mapstructure:"content"`
	RootPath        string `mapstructure:"root_path"`
	ShowDonateLinks bool   `mapstructure:"show_donate_links"`
	ContactAnchor   string `mapstructure:"contact_anchor"`
	Watch           bool   `mapstructure:"watch"`
}

/**
 * Metrics configuration
 * @property {bool} enabled - Expose prometheus metrics
 * @property {string} path - HTTP path of the metrics endpoint
 * @property {string} pushgateway - Pushgateway address used by the metrics command
 */
type MetricsConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Path        string `mapstructure:"path"`
	Pushgateway string `mapstructure:"pushgateway"`
}

type AppConfig struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Site    SiteConfig    `mapstructure:"site"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

var Config AppConfig

var configFile string

/**
 * Load application configuration from YAML file
 * @param {string} path - Explicit config file, empty to search the default locations
 * @returns {*AppConfig} Loaded configuration with defaults applied
 * @returns {error} Error if the file exists but cannot be parsed
 * @description
 * - Searches config.yaml in the working directory and in the dfx-site home directory
 * - Environment variables prefixed with DFX_SITE override file values
 * - A missing config file is not an error, defaults are used instead
 */
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("DFX_SITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(env.SiteDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return collectConfig(&cfg), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "console")
	v.SetDefault("site.root", ".")
	v.SetDefault("site.contact_anchor", "./#contact")
	v.SetDefault("site.show_donate_links", true)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

func collectConfig(cfg *AppConfig) *AppConfig {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Site.Root == "" {
		cfg.Site.Root = "."
	}
	if cfg.Site.ContactAnchor == "" {
		cfg.Site.ContactAnchor = "./#contact"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	return cfg
}

/**
 * Use an explicit config file instead of the search path
 * @param {string} path - Config file path given on the command line
 * @returns {error} Error if the file cannot be loaded
 */
func SetConfigFile(path string) error {
	configFile = path
	return ReloadConfig()
}

/**
 * Reload configuration from disk into the global Config
 * @returns {error} Error if the config file cannot be parsed, Config is left unchanged
 */
func ReloadConfig() error {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return err
	}
	Config = *cfg
	return nil
}

func init() {
	cfg, err := LoadConfig("")
	if err == nil {
		Config = *cfg
	} else {
		collectConfig(&Config)
	}
}
