// Export pipeline: downloads Atlas Academy exports, classifies skills and
// writes normalized servant and mystic code data.
//
// Usage:
//
//	go run ./cmd/fgoexport                          # run everything
//	go run ./cmd/fgoexport servants mysticcodes     # run only specified generators
//	go run ./cmd/fgoexport --list                   # list available generators
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/udisondev/fgoexport/internal/config"
	"github.com/udisondev/fgoexport/internal/db"
	"github.com/udisondev/fgoexport/internal/fetch"
)

// ConfigPath is the default config location, overridable with FGOEXPORT_CONFIG.
const ConfigPath = "config/fgoexport.yaml"

type generator struct {
	name     string
	desc     string
	generate func(ctx context.Context, p *pipeline) error
}

var generators []generator

func registerGenerator(name, desc string, fn func(ctx context.Context, p *pipeline) error) {
	generators = append(generators, generator{name: name, desc: desc, generate: fn})
}

func init() {
	registerGenerator("servants", "Servants with noble phantasms and skills (nice_servant.json)", generateServants)
	registerGenerator("mysticcodes", "Mystic codes with skills (nice_mystic_code.json)", generateMysticCodes)
}

// pipeline carries what every generator needs.
type pipeline struct {
	cfg     config.Exporter
	fetcher *fetch.Fetcher
	repo    *db.ExportRepository // nil when the database sink is disabled
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) > 0 && args[0] == "--list" {
		printList(stdout)
		return nil
	}

	toRun, err := selectGenerators(args)
	if err != nil {
		return err
	}

	cfgPath := ConfigPath
	if p := os.Getenv("FGOEXPORT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadExporter(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("fgoexport starting",
		"region", cfg.Region,
		"schema", cfg.Schema.Name,
		"cooldown_mode", cfg.CooldownMode,
		"database", cfg.Database.Enabled)

	p := &pipeline{
		cfg: cfg,
		fetcher: fetch.New(nil, fetch.Options{
			DataDir:      cfg.DataDir,
			Retries:      cfg.Fetch.Retries,
			RetryDelay:   cfg.Fetch.RetryDelay,
			MinCacheSize: cfg.Fetch.MinCacheSize,
			Timeout:      cfg.Fetch.Timeout,
		}),
	}

	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")
		p.repo = db.NewExportRepository(database.Pool())
	}

	totalStart := time.Now()
	for _, g := range toRun {
		start := time.Now()
		slog.Info("running generator", "name", g.name)
		if err := g.generate(ctx, p); err != nil {
			return fmt.Errorf("generator %s: %w", g.name, err)
		}
		slog.Info("generator done", "name", g.name, "took", time.Since(start).Round(time.Millisecond))
	}
	slog.Info("all done", "took", time.Since(totalStart).Round(time.Millisecond))
	return nil
}

// selectGenerators resolves CLI arguments; none or "all" selects everything.
func selectGenerators(args []string) ([]generator, error) {
	if len(args) == 0 || args[0] == "all" {
		return generators, nil
	}

	genMap := make(map[string]generator, len(generators))
	for _, g := range generators {
		genMap[g.name] = g
	}

	toRun := make([]generator, 0, len(args))
	for _, name := range args {
		g, ok := genMap[name]
		if !ok {
			return nil, fmt.Errorf("unknown generator: %s", name)
		}
		toRun = append(toRun, g)
	}
	return toRun, nil
}

func printList(w io.Writer) {
	names := make([]string, 0, len(generators))
	maxLen := 0
	descs := make(map[string]string, len(generators))
	for _, g := range generators {
		names = append(names, g.name)
		descs[g.name] = g.desc
		maxLen = max(maxLen, len(g.name))
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Available generators:")
	for _, name := range names {
		padding := strings.Repeat(" ", maxLen-len(name)+2)
		fmt.Fprintf(w, "  %s%s%s\n", name, padding, descs[name])
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
