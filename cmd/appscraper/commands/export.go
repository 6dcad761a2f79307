package commands

import (
	"os"

	"github.com/hanane-yh/app-scraper/lib/serviceutil"
	"github.com/hanane-yh/app-scraper/lib/sqliteutil"
	"github.com/hanane-yh/app-scraper/services/catalog/db"
	"github.com/hanane-yh/app-scraper/services/catalog/export"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var exportDb *string
var exportOut *string

func init() {
	exportDb = exportCmd.Flags().String("db", "", "Override the database path from config.json5.")
	exportOut = exportCmd.Flags().String("out", "", "Override the output path from config.json5.")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [--db <path/to/catalog.db>] [--out <path/to/output.xlsx>]",
	Short: "Exports the database to an xlsx workbook with Apps, Comments and Users sheets.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		cfg := readConfig()
		if *exportDb != "" {
			cfg.Database = *exportDb
		}
		if *exportOut != "" {
			cfg.Output = *exportOut
		}

		database, err := sqliteutil.OpenDB(db.Schema, cfg.Database)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		summary, err := export.WriteWorkbook(ctx, database, cfg.Output)
		if err != nil {
			serviceutil.Fatal("failed to write workbook", err)
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"apps", "comments", "users", "output"})
		t.AppendRow(table.Row{summary.Apps, summary.Comments, summary.Users, cfg.Output})
		t.Render()
	},
}
