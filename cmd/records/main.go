// Records is a terminal task-list editor.
//
// Usage:
//
//	records [command] [flags]
//
// Running without a command opens the interactive editor.
// See 'records --help' for available commands.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Makepad-fr/records/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
