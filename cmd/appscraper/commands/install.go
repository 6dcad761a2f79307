package commands

import (
	"log/slog"

	"github.com/hanane-yh/app-scraper/lib/browser"
	"github.com/hanane-yh/app-scraper/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Downloads the browser driver and chromium build used for comment scraping.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := browser.Install(); err != nil {
			serviceutil.Fatal("failed to install browser", err)
		}
		slog.Info("browser driver and chromium installed")
	},
}
