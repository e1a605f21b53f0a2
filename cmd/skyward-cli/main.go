package main

import (
	"context"
	"fmt"
	"os"

	"skyward-backend/cmd/skyward-cli/commands"
	"skyward-backend/lib/osutil"
	"skyward-backend/lib/telemetry"
)

func main() {
	ctx, cancel := osutil.SignalContext(context.Background())
	defer cancel()

	tel, err := telemetry.SetupFromEnv(ctx, "skyward-cli")
	if err != nil && !os.IsNotExist(err) {
		osutil.Fatal("failed to setup telemetry", err)
	}

	err = commands.ExecuteContext(ctx)
	tel.Shutdown(context.Background())
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
