package commands

import (
	"os"
	"time"

	"github.com/hanane-yh/app-scraper/lib/browser"
	"github.com/hanane-yh/app-scraper/lib/scrapers/bazaar"
	"github.com/hanane-yh/app-scraper/lib/serviceutil"
	"github.com/hanane-yh/app-scraper/lib/sqliteutil"
	"github.com/hanane-yh/app-scraper/services/catalog"
	"github.com/hanane-yh/app-scraper/services/catalog/db"
	"github.com/hanane-yh/app-scraper/services/catalog/scraper"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var scrapeDb *string

func init() {
	scrapeDb = scrapeCmd.Flags().String("db", "", "Override the database path from config.json5.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--db <path/to/catalog.db>]",
	Short: "Scrapes the configured marketplace listing into the database.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		cfg := readConfig()
		if *scrapeDb != "" {
			cfg.Database = *scrapeDb
		}

		client, err := bazaar.NewClient(ctx, bazaar.ClientOptions{
			BaseUrl: cfg.BaseUrl,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize marketplace client", err)
		}

		session, err := browser.Start(browser.Options{
			Headless:          !cfg.Headful,
			NavigationTimeout: time.Duration(cfg.NavigationTimeoutSec) * time.Second,
		})
		if err != nil {
			serviceutil.Fatal("failed to start browser session, run 'appscraper install' first", err)
		}
		defer session.Close()

		database, err := sqliteutil.OpenDB(db.Schema, cfg.Database)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		s := scraper.New(client, session, catalog.NewService(database), scraper.Options{
			ListUrl:           cfg.ListUrl,
			MaxLoadMoreClicks: cfg.MaxLoadMoreClicks,
			SettleDelay:       time.Duration(cfg.SettleDelayMs) * time.Millisecond,
		})
		summary, err := s.Run(ctx)
		renderSummary(summary)
		if err != nil {
			serviceutil.Fatal("scrape aborted", err)
		}
	},
}

func renderSummary(summary scraper.Summary) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"apps", "succeeded", "skipped", "comments", "elapsed"})
	t.AppendRow(table.Row{
		summary.Apps,
		summary.Succeeded,
		summary.Skipped,
		summary.Comments,
		summary.Elapsed.Round(time.Millisecond),
	})
	t.Render()

	if len(summary.Failures) == 0 {
		return
	}
	f := table.NewWriter()
	f.SetStyle(table.StyleRounded)
	f.SetOutputMirror(os.Stdout)
	f.AppendHeader(table.Row{"skipped app", "reason"})
	for _, failure := range summary.Failures {
		f.AppendRow(table.Row{failure.Package, failure.Reason})
	}
	f.Render()
}
