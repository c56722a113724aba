package main

import (
	"context"

	"tripfund/cmd/tripscan/commands"
	"tripfund/lib/cliutil"
	"tripfund/lib/telemetry"
)

func main() {
	ctx := cliutil.SignalContext()
	tel, err := telemetry.SetupFromEnv(ctx, "tripscan")
	if err != nil {
		cliutil.Fatal("failed to setup telemetry", err)
	}
	defer tel.Shutdown(context.Background())
	if tel.MeterProvider != nil {
		telemetry.InstrumentPerfStats(ctx)
	}

	commands.ExecuteContext(ctx)
}
