package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/meltforce/speedifit/internal/calendar"
	"github.com/meltforce/speedifit/internal/config"
	"github.com/meltforce/speedifit/internal/kv"
	speedimcp "github.com/meltforce/speedifit/internal/mcp"
	"github.com/meltforce/speedifit/internal/metrics"
	"github.com/meltforce/speedifit/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	remote := flag.String("remote", "", "SpeediFit server URL; serve a remote instance instead of local storage")
	apiKey := flag.String("api-key", os.Getenv("SPEEDIFIT_AUTH_API_KEY"), "API key for writes in remote mode")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("speedifit-mcp", Version)
		return
	}

	// stdout carries the MCP protocol
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds speedimcp.DataSource
	if *remote != "" {
		ds = speedimcp.NewHTTPClient(*remote, *apiKey)
		log.Info("serving remote data", "server", *remote)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		clock, err := calendar.NewClock(cfg.Calendar.Timezone)
		if err != nil {
			log.Error("invalid timezone", "error", err)
			os.Exit(1)
		}

		store, err := kv.Open(context.Background(), cfg.Storage, log)
		if err != nil {
			log.Error("failed to open storage", "error", err)
			os.Exit(1)
		}
		defer store.Close()

		m := metrics.NewManager("mcp", prometheus.NewRegistry())
		ds = speedimcp.Local{Repo: storage.New(store, clock, log, m)}
	}

	s := speedimcp.New(ds, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
