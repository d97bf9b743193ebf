package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sfairchild/parasvg/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	gistID := flag.String("gist", "", "gist id to open on startup (optional)")
	gistName := flag.String("name", "", "file basename within the gist (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		GistID:     *gistID,
		GistName:   *gistName,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "parasvg: %v\n", err)
		return 1
	}
	return 0
}
