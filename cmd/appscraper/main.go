package main

import (
	"context"

	"github.com/hanane-yh/app-scraper/cmd/appscraper/commands"
	"github.com/hanane-yh/app-scraper/lib/serviceutil"
	"github.com/hanane-yh/app-scraper/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "appscraper")
	telemetry.InitSlog(false)
	telemetry.InstrumentPerfStats(ctx)
	defer telemetry.Shutdown(context.Background())

	commands.ExecuteContext(ctx)
}
