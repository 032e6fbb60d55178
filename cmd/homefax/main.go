// Package main is the homefax CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/homefax/internal/cli"
	"github.com/hyperjump/homefax/internal/config"
	"github.com/hyperjump/homefax/internal/export"
	"github.com/hyperjump/homefax/internal/fixture"
	"github.com/hyperjump/homefax/internal/models"
	"github.com/hyperjump/homefax/internal/scoring"
	"github.com/hyperjump/homefax/internal/server"
	"github.com/hyperjump/homefax/internal/storage"
	"github.com/hyperjump/homefax/internal/watcher"
	"github.com/hyperjump/homefax/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/homefax/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development). When the default path
// does not exist either, built-in defaults are used so the demo runs without setup.
// Returns the config and the path that was actually loaded ("" for defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "serve", "server":
		runServe()
	case "list":
		runList()
	case "report":
		runReport()
	case "export":
		runExport()
	case "seed":
		runSeed()
	case "init":
		runInit()
	case "version", "--version", "-v":
		fmt.Printf("homefax version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// setup loads config and builds a logger; debug forces debug logging.
func setup(configPath string, debug bool) (*config.Config, *zap.Logger) {
	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("config loaded", zap.String("config_path", resolved), zap.Bool("debug", debugMode))
	return cfg, logger
}

func runServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	dataPath := fs.String("data", "", "homes file (.json, .yaml, .xlsx, .db); overrides data.homes_path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, logger := setup(*configPath, *debug)
	defer logger.Sync()

	ctx := context.Background()
	components, err := initializeComponents(ctx, cfg, *dataPath, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(ctx)
	defer watchCancel()
	if components.Watchable() && cfg.Data.WatchOrDefault() {
		w := watcher.NewWatcher(components.SourcePath, func(path string) {
			if err := components.Reload(watchCtx); err != nil {
				logger.Warn("reload failed, keeping previous homes", zap.String("path", path), zap.Error(err))
				return
			}
			logger.Info("homes reloaded", zap.String("path", path), zap.Int("homes", components.Catalog.Len()))
		}, watcher.WithLogger(logger))
		if err := w.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer w.Stop()
	}

	srv := server.NewServer(components.Catalog, components.Engine, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(shutdownCtx)
}

func runList() {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	dataPath := fs.String("data", "", "homes file (.json, .yaml, .xlsx, .db); overrides data.homes_path")
	filters := addFilterFlags(fs)
	outputFormat := fs.String("output", "text", "output format: text, compact (one home per line), or json")
	fs.Usage = func() { printListUsage(fs) }
	_ = fs.Parse(argsReorder(fs, os.Args[2:]))

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, logger := setup(*configPath, false)
	defer logger.Sync()

	ctx := context.Background()
	components, err := initializeComponents(ctx, cfg, *dataPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	criteria, weights, err := filters.resolve(cfg, components.Scorer.CurrentYear(), buildSearchText(fs.Args()))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	response := components.Engine.Search(ctx, components.Catalog.Homes(), criteria, weights)
	if err := cli.WriteHomes(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runReport() {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	dataPath := fs.String("data", "", "homes file (.json, .yaml, .xlsx, .db); overrides data.homes_path")
	formatName := fs.String("format", "html", "report format: html, text, or json")
	outPath := fs.String("out", "", `output file ("-" for stdout; default: export.output_dir/<address>_Home_Report.<ext>)`)
	weightsSpec := fs.String("weights", "", "system weights, e.g. roof=0.4,hvac=0.2 (unset systems keep config values)")
	_ = fs.Parse(argsReorder(fs, os.Args[2:]))

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: homefax report [flags] <home-id>")
		os.Exit(1)
	}
	format, err := export.ParseFormatFor(*formatName, export.ReportFormats)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, logger := setup(*configPath, false)
	defer logger.Sync()

	components, err := initializeComponents(context.Background(), cfg, *dataPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	weights, err := parseWeightsFlag(*weightsSpec, cfg.Scoring.Weights)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	home, err := components.Catalog.Get(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Report failed: %v\n", err)
		os.Exit(1)
	}
	report := export.BuildReport(components.Scorer, home, weights, time.Now())
	target := *outPath
	if target == "" {
		name := strings.TrimSuffix(export.ReportFilename(home), ".html") + "." + format.Extension()
		target = filepath.Join(cfg.Export.OutputDir, name)
	}
	if err := writeOutput(target, func(w io.Writer) error { return export.WriteReport(w, format, report) }); err != nil {
		fmt.Fprintf(os.Stderr, "Report failed: %v\n", err)
		os.Exit(1)
	}
	if target != "-" {
		fmt.Printf("Report written: %s\n", target)
	}
}

func runExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	dataPath := fs.String("data", "", "homes file (.json, .yaml, .xlsx, .db); overrides data.homes_path")
	formatName := fs.String("format", "csv", "export format: csv, xlsx, json, or yaml")
	outPath := fs.String("out", "", `output file ("-" for stdout; default: export.output_dir/homes_<n>.<ext>)`)
	filters := addFilterFlags(fs)
	_ = fs.Parse(argsReorder(fs, os.Args[2:]))

	format, err := export.ParseFormatFor(*formatName, export.CollectionFormats)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, logger := setup(*configPath, false)
	defer logger.Sync()

	components, err := initializeComponents(context.Background(), cfg, *dataPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	criteria, weights, err := filters.resolve(cfg, components.Scorer.CurrentYear(), buildSearchText(fs.Args()))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rows := components.Engine.FilterScored(components.Catalog.Homes(), criteria, weights)
	target := *outPath
	if target == "" {
		target = filepath.Join(cfg.Export.OutputDir, export.CollectionFilename(len(rows), format))
	}
	if err := writeOutput(target, func(w io.Writer) error { return export.WriteCollection(w, format, rows) }); err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	if target != "-" {
		fmt.Printf("Exported %d homes: %s\n", len(rows), target)
	}
}

func runSeed() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	count := fs.Int("count", 0, "number of demo homes (default: data.generate_count)")
	outPath := fs.String("out", "", "target store (.db, .json, .yaml; default: data.database_path)")
	_ = fs.Parse(os.Args[2:])

	cfg, logger := setup(*configPath, false)
	defer logger.Sync()

	n := *count
	if n <= 0 {
		n = cfg.Data.GenerateCount
	}
	target := *outPath
	if target == "" {
		target = cfg.Data.DatabasePath
	}
	info, err := seed(context.Background(), target, fixture.BuildHomes(n, scoring.NewEngine().CurrentYear()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Seeded %d homes into %s (%d bytes)\n", n, info.Path, info.SizeBytes)
}

// seed replaces the collection stored at path with homes.
func seed(ctx context.Context, path string, homes []models.Home) (storage.Info, error) {
	store, err := storage.Open(path)
	if err != nil {
		return storage.Info{}, err
	}
	if err := store.SaveHomes(ctx, homes); err != nil {
		_ = store.Close()
		return storage.Info{}, err
	}
	if err := store.Close(); err != nil {
		return storage.Info{}, fmt.Errorf("failed to close store: %w", err)
	}
	return storage.Stat(path)
}

func runInit() {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file to create")
	force := fs.Bool("force", false, "overwrite an existing config file")
	_ = fs.Parse(os.Args[2:])

	if err := initConfig(*configPath, *force); err != nil {
		fmt.Fprintf(os.Stderr, "Init failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Config written: %s\n", *configPath)
}

// initConfig writes a config holding every default to path. An existing file
// is kept unless force is set.
func initConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w (use -force to overwrite)", path, os.ErrExist)
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return config.Save(path, cfg)
}

// writeOutput hands write a temporary sibling of path and renames it into
// place on success, so a failed write leaves nothing behind. "-" is stdout.
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(os.Stdout)
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmp := f.Name()
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace output file: %w", err)
	}
	return nil
}

// buildSearchText joins all positional args with spaces so multi-word address
// searches work the same with or without shell quoting.
func buildSearchText(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// argsReorder moves any flags (and their values) that appear after the
// positional arguments to the front so that fs.Parse sees them. Go's flag
// package stops at the first non-flag argument, so "homefax list oak -min-score 70"
// would otherwise leave -min-score unparsed. Positional arguments keep their
// relative order, and everything after "--" stays positional.
func argsReorder(fs *flag.FlagSet, args []string) []string {
	flags := make([]string, 0, len(args))
	positional := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(a) < 2 || a[0] != '-' {
			positional = append(positional, a)
			continue
		}
		flags = append(flags, a)
		name := strings.TrimLeft(a, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if takesValue(fs, name) && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	return append(flags, positional...)
}

// takesValue reports whether the named flag consumes the following argument.
// Unknown flags are assumed to, so fs.Parse reports them with their value.
func takesValue(fs *flag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	if f == nil {
		return true
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return false
	}
	return true
}

func printListUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: homefax list [flags] [address text]\n\n")
	fmt.Fprintf(fs.Output(), "Address text is all remaining arguments joined by spaces and matched as a case-insensitive substring.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  homefax list
  homefax list maple ave
  homefax list -min-score 80 -min-beds 3
  homefax list -weights roof=1,hvac=0,plumbing=0,electrical=0,waterHeater=0 -output compact
  homefax list -year-min 1990 -year-max 2010 -output json
`)
}

func printUsage() {
	fmt.Println(`homefax - Home health scoring for property listings

Usage:
  homefax serve [flags]              Start the HTTP API
  homefax list [flags] [text]        List homes matching filters
  homefax report [flags] <id>        Write the health report for one home
  homefax export [flags] [text]      Export filtered homes (csv, xlsx, json, yaml)
  homefax seed [flags]               Store generated demo homes
  homefax init [flags]               Write a config file with the defaults
  homefax version                    Show version
  homefax help                       Show this help

Common Flags:
  --config string    Config file path (default: /usr/local/etc/homefax/config.yaml, or ./config.yaml)
  --data string      Homes file (.json, .yaml, .yml, .xlsx, .db, .sqlite); overrides data.homes_path

Filter Flags (list, export):
  --min-score int      Minimum health score (0-100)
  --min-beds int       Minimum bedrooms (0 = any)
  --min-baths float    Minimum bathrooms (0 = any)
  --year-min int       Earliest year built (default: search.year_min)
  --year-max int       Latest year built (default: current year)
  --weights string     System weights, e.g. roof=0.4,hvac=0.2

Examples:
  homefax serve --data ./homes.yaml
  homefax list --min-score 70 oak
  homefax report --format text -out - AUS-007
  homefax export --format xlsx --min-beds 3
  homefax seed --count 200 --out ./homes.db`)
}
