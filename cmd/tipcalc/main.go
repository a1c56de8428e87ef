package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/mmynk/tipwiser/internal/config"
	"github.com/mmynk/tipwiser/internal/console"
	"github.com/mmynk/tipwiser/pkg/logging"
	"github.com/mmynk/tipwiser/pkg/tipapi/tipapiconnect"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	addr := flag.String("addr", "", "server base URL (e.g. http://localhost:8080); empty runs locally")
	currency := flag.String("currency", cfg.Currency, "currency prefix for amounts")
	flag.Parse()

	logging.Setup(cfg.Log.Level, "text")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var sess console.Session = console.NewLocalSession(*currency)
	if *addr != "" {
		client := tipapiconnect.NewTipServiceClient(http.DefaultClient, *addr)
		remote, err := console.NewRemoteSession(ctx, client)
		if err != nil {
			slog.Error("Failed to open remote session", "addr", *addr, "error", err)
			os.Exit(1)
		}
		slog.Debug("Remote session opened", "session_id", remote.ID())
		sess = remote
	}
	defer func() {
		if err := sess.Close(context.Background()); err != nil {
			slog.Warn("Failed to close session", "error", err)
		}
	}()

	if err := console.Run(ctx, os.Stdin, os.Stdout, sess); err != nil {
		slog.Error("Console stopped", "error", err)
		stop()
		os.Exit(1)
	}
}
