package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
// Any error is printed to stderr and exits with status 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
		return
	}
}
