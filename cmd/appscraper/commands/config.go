package commands

import (
	"os"

	"github.com/hanane-yh/app-scraper/lib/configutil"
	"github.com/hanane-yh/app-scraper/lib/serviceutil"
)

type Config struct {
	ListUrl string `json:"list_url"`
	BaseUrl string `json:"base_url"`
	// MaxLoadMoreClicks bounds how far each comment list is expanded.
	MaxLoadMoreClicks int `json:"max_load_more_clicks"`
	SettleDelayMs     int `json:"settle_delay_ms"`
	// NavigationTimeoutSec bounds every browser page load.
	NavigationTimeoutSec int `json:"navigation_timeout_sec"`
	// Headful opens a visible browser window, useful for debugging
	// the load-more interaction.
	Headful  bool   `json:"headful"`
	Database string `json:"database"`
	Output   string `json:"output"`
}

// readConfig loads config.json5 if present and fills in the defaults.
// A missing file just means an all-default run.
func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}

	if cfg.ListUrl == "" {
		cfg.ListUrl = "https://cafebazaar.ir/lists/ml-mental-health-exercises"
	}
	if cfg.BaseUrl == "" {
		cfg.BaseUrl = "https://cafebazaar.ir"
	}
	if cfg.MaxLoadMoreClicks == 0 {
		cfg.MaxLoadMoreClicks = 20
	}
	if cfg.SettleDelayMs == 0 {
		cfg.SettleDelayMs = 1000
	}
	if cfg.NavigationTimeoutSec == 0 {
		cfg.NavigationTimeoutSec = 30
	}
	if cfg.Database == "" {
		cfg.Database = "catalog.db"
	}
	if cfg.Output == "" {
		cfg.Output = "exported_data.xlsx"
	}
	return cfg
}
