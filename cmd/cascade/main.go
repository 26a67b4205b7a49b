// Command cascade removes the records and objects that depend on a deleted
// publicContent document.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/cascade/internal/adapters/driving/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &application{}
	cli.SetBootstrap(app.bootstrap)

	err := cli.Execute(ctx)
	if cerr := app.close(); cerr != nil {
		fmt.Fprintln(os.Stderr, "Error closing stores:", cerr)
	}
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
