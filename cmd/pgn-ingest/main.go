// pgn-ingest reads PGN chess archives, validates every game and prints,
// counts or stores the accepted ones.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

const programVersion = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
