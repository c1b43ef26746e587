package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/guckert-dev/shopify-mcp/internal/analytics"
	httpapi "github.com/guckert-dev/shopify-mcp/internal/api/http"
	"github.com/guckert-dev/shopify-mcp/internal/shopify"
	"github.com/guckert-dev/shopify-mcp/log"
	"github.com/spf13/viper"
)

// Config represents the global configuration for the service.
type Config struct {
	Logger     log.Config           `mapstructure:"logger"`
	HTTP       httpapi.Config       `mapstructure:"http"`
	Shopify    shopify.Config       `mapstructure:"shopify"`
	Benchmarks analytics.Benchmarks `mapstructure:"benchmarks"`
}

// LoadConfig loads the configuration from a file and/or environment
// variables. Environment variables take precedence over config file values.
func LoadConfig(cfgFile string) (*Config, error) {
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	bindEnvVars()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/config/shopify-mcp")
		viper.AddConfigPath("/etc/shopify-mcp")
		// config file is optional, env vars can carry everything
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	// keep the canonical benchmark table for anything the file left unset
	config.Benchmarks.FillDefaults()

	return &config, nil
}

// bindEnvVars binds environment variables to config keys so flat env names
// work alongside the config file.
func bindEnvVars() {
	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	viper.BindEnv("http.port", "HTTP_PORT")
	viper.BindEnv("http.address", "HTTP_ADDRESS")
	viper.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")

	// Shopify
	viper.BindEnv("shopify.store_domain", "SHOPIFY_STORE_DOMAIN")
	viper.BindEnv("shopify.access_token", "SHOPIFY_ACCESS_TOKEN")
	viper.BindEnv("shopify.api_version", "SHOPIFY_API_VERSION")
	viper.BindEnv("shopify.http_timeout", "SHOPIFY_HTTP_TIMEOUT")

	// Benchmarks (policy overrides)
	viper.BindEnv("benchmarks.order_conversion_rate", "BENCHMARKS_ORDER_CONVERSION_RATE")
	viper.BindEnv("benchmarks.visitor_checkout_rate", "BENCHMARKS_VISITOR_CHECKOUT_RATE")
	viper.BindEnv("benchmarks.cart_to_checkout_rate", "BENCHMARKS_CART_TO_CHECKOUT_RATE")
	viper.BindEnv("benchmarks.forecast_lookback_days", "BENCHMARKS_FORECAST_LOOKBACK_DAYS")
}
