// Command server runs the dictionary HTTP API.
//
// Flags:
//
//	--config  path to the YAML config file (overrides CONFIG_PATH)
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/etimoloji/clauson-dictionary/internal/app"
)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, *configFlag); err != nil {
		log.Printf("server: %v", err)
		stop()
		os.Exit(1)
	}
}
