// Command vectorkit formats, encodes and evaluates vectors from the shell,
// serves them over HTTP and moves them across serial lines.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/CK6170/vectorkit/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
