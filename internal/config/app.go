package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type Provider struct {
	BaseURL             string `mapstructure:"base_url"`
	ListTimeoutSeconds  int    `mapstructure:"list_timeout_seconds"`
	FetchTimeoutSeconds int    `mapstructure:"fetch_timeout_seconds"`
	SafetyMargin        int    `mapstructure:"safety_margin"`
}

type Scheduler struct {
	RefreshSeconds          int `mapstructure:"refresh_seconds"`
	BootstrapBackoffSeconds int `mapstructure:"bootstrap_backoff_seconds"`
}

type Pruner struct {
	TTLSeconds      int `mapstructure:"ttl_seconds"`
	IntervalSeconds int `mapstructure:"interval_seconds"`
}

type Enrich struct {
	Workers             int     `mapstructure:"workers"`
	DepthFraction       float64 `mapstructure:"depth_fraction"`
	CandleWindowSeconds int     `mapstructure:"candle_window_seconds"`
	RequestCost         int     `mapstructure:"request_cost"`
}

type ViewCache struct {
	MaxItems   int64 `mapstructure:"max_items"`
	TTLSeconds int   `mapstructure:"ttl_seconds"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	Provider   Provider   `mapstructure:"provider"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Pruner     Pruner     `mapstructure:"pruner"`
	Enrich     Enrich     `mapstructure:"enrich"`
	ViewCache  ViewCache  `mapstructure:"view_cache"`
	Logging    Logging    `mapstructure:"logging"`
}

func Init() (*AppConfig, error) {
	var cfg AppConfig

	// .env is optional; env vars may come from the environment directly.
	_ = godotenv.Load()

	viper.SetConfigFile("config.yaml")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	viper.SetDefault("http_server.port", "5100")
	viper.SetDefault("provider.base_url", "https://api.bitvavo.com")
	viper.SetDefault("provider.list_timeout_seconds", 10)
	viper.SetDefault("provider.fetch_timeout_seconds", 5)
	viper.SetDefault("provider.safety_margin", 10)
	viper.SetDefault("scheduler.refresh_seconds", 10)
	viper.SetDefault("scheduler.bootstrap_backoff_seconds", 30)
	viper.SetDefault("pruner.ttl_seconds", 300)
	viper.SetDefault("pruner.interval_seconds", 300)
	viper.SetDefault("enrich.workers", 5)
	viper.SetDefault("enrich.depth_fraction", 0.05)
	viper.SetDefault("enrich.candle_window_seconds", 360)
	viper.SetDefault("enrich.request_cost", 2)
	viper.SetDefault("view_cache.max_items", 64)
	viper.SetDefault("view_cache.ttl_seconds", 2)
	viper.SetDefault("logging.level", "info")

	// http server env vars
	_ = viper.BindEnv("http_server.port", "PORT")

	// provider env vars
	_ = viper.BindEnv("provider.base_url", "PROVIDER_BASE_URL")
	_ = viper.BindEnv("provider.list_timeout_seconds", "PROVIDER_LIST_TIMEOUT_SECONDS")
	_ = viper.BindEnv("provider.fetch_timeout_seconds", "PROVIDER_FETCH_TIMEOUT_SECONDS")

	// refresh loop env vars
	_ = viper.BindEnv("scheduler.refresh_seconds", "SCHEDULER_REFRESH_SECONDS")
	_ = viper.BindEnv("pruner.ttl_seconds", "PRUNER_TTL_SECONDS")

	// logging env vars
	_ = viper.BindEnv("logging.level", "LOG_LEVEL")

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
