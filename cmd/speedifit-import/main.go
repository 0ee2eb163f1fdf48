package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/meltforce/speedifit/internal/calendar"
	"github.com/meltforce/speedifit/internal/config"
	"github.com/meltforce/speedifit/internal/importer"
	"github.com/meltforce/speedifit/internal/kv"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	inPath := flag.String("in", "", "storage export to import (\"-\" for stdin)")
	outPath := flag.String("export", "", "write an export to this file (\"-\" for stdout) instead of importing")
	dryRun := flag.Bool("dry-run", false, "validate and report counts without writing to storage")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if (*inPath == "") == (*outPath == "") {
		fmt.Fprintf(os.Stderr, "Usage: speedifit-import -config config.yaml (-in export.json [-dry-run] | -export out.json)\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
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

	ctx := context.Background()
	store, err := kv.Open(ctx, cfg.Storage, log)
	if err != nil {
		log.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if *outPath != "" {
		if err := export(ctx, store, *outPath); err != nil {
			log.Error("export failed", "error", err)
			os.Exit(1)
		}
		log.Info("export complete", "path", *outPath)
		return
	}

	var in io.Reader = os.Stdin
	if *inPath != "-" {
		f, err := os.Open(*inPath)
		if err != nil {
			log.Error("failed to open export", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	if *dryRun {
		log.Info("DRY RUN mode, nothing will be written to storage")
	}

	// Run import
	imp := importer.New(store, clock, log, *dryRun)
	stats, err := imp.Import(ctx, in)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func export(ctx context.Context, store kv.Store, path string) error {
	if path == "-" {
		return importer.Export(ctx, store, os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := importer.Export(ctx, store, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"maxes_imported", stats.MaxesImported,
		"maxes_dropped", stats.MaxesDropped,
		"workouts_imported", stats.WorkoutsImported,
		"workouts_evicted", stats.WorkoutsEvicted,
		"workouts_dropped", stats.WorkoutsDropped,
		"ids_assigned", stats.IDsAssigned,
		"volumes_recomputed", stats.VolumesRecomputed,
		"creatine_days", stats.CreatineDays,
		"creatine_invalid", stats.CreatineInvalid,
		"creatine_duplicates", stats.CreatineDuplicates,
		"creatine_trimmed", stats.CreatineTrimmed,
		"streak", stats.Streak,
		"keys_written", stats.KeysWritten,
	)
	if len(stats.UnknownKeys) > 0 {
		log.Info("skipped keys (not app data)", "keys", stats.UnknownKeys)
	}
}
