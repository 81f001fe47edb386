// Command shelters validates and queries the shelter directory collection.
//
// Usage:
//
//	shelters validate --data docs/data/facilities.json
//	shelters query --data docs/data/facilities.json --village 豐華里 --sort capacity-desc
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/shelter-directory/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
