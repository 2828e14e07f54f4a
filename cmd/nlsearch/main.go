// Package main is the nlsearch CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hyperjump/nlsearch/internal/config"
	"github.com/hyperjump/nlsearch/internal/dataset"
	"github.com/hyperjump/nlsearch/internal/search"
	"github.com/hyperjump/nlsearch/internal/server"
	"github.com/hyperjump/nlsearch/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/nlsearch/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// A missing default config yields built-in defaults with an empty resolved path.
// Returns the config and the path that was actually loaded.
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
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// buildEngine creates a search engine from the search and nlp config sections.
func buildEngine(cfg *config.Config, logger *zap.Logger) (*search.Engine, error) {
	kit, err := cfg.NLP.Toolkit()
	if err != nil {
		return nil, err
	}
	weights := cfg.Search.Weights
	return search.NewEngine(
		search.WithToolkit(kit),
		search.WithWeights(&weights),
		search.WithMaxExtractDepth(cfg.Search.MaxExtractDepth),
		search.WithMaxTraversalDepth(cfg.Search.MaxTraversalDepth),
		search.WithDefaults(cfg.Search.Defaults()),
		search.WithLogger(logger),
	), nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "datasets":
		runDatasets()
	case "version", "--version", "-v":
		fmt.Printf("nlsearch version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (per-search statistics, dataset reloads, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
		zap.String("stemmer", cfg.NLP.Stemmer),
		zap.String("similarity", cfg.NLP.Similarity),
	)

	engine, err := buildEngine(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create search engine", zap.Error(err))
	}

	store := dataset.NewStore(logger)
	if err := store.LoadAll(cfg.Datasets); err != nil {
		logger.Warn("some datasets failed to load", zap.Error(err))
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Watch.EnabledOrDefault() && len(cfg.Datasets) > 0 {
		watchOpts := []dataset.WatcherOption{dataset.WithDebounce(cfg.Watch.Debounce)}
		if debugMode {
			watchOpts = append(watchOpts, dataset.WithLogger(logger))
		}
		watchSvc := dataset.WatchStore(store, watchOpts...)
		for name, path := range cfg.Datasets {
			if err := watchSvc.Track(path); err != nil {
				logger.Warn("cannot watch dataset", zap.String("name", name), zap.String("path", path), zap.Error(err))
			}
		}
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
	}

	srv := server.NewServer(engine, store, &cfg.Server, logger,
		server.WithVersion(version),
		server.WithToolkitNames(cfg.NLP.Stemmer, cfg.NLP.Similarity),
	)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func printUsage() {
	fmt.Println(`nlsearch - Natural-language search over JSON and YAML trees

Usage:
  nlsearch server [flags]           Start the HTTP server
  nlsearch search [flags] <query>   Search a JSON/YAML document or dataset
  nlsearch datasets [flags]         List datasets
  nlsearch version                  Show version
  nlsearch help                     Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/nlsearch/config.yaml)
  --debug            Enable debug logging (per-search statistics, dataset reloads, etc.)

Search Flags:
  --config string       Config file path (search defaults, nlp settings, datasets)
  --file string         Input file (default: stdin)
  --input string        Input format: json or yaml (default: from file extension, else json)
  --dataset string      Search a configured dataset instead of --file
  --server string       Server URL; when set, the search runs on the server
  --min-score float     Minimum score (default from config, or 0.3)
  --limit int           Maximum results to print (default: 0, all)
  --offset int          Skip this many ranked results
  --keys                Match object keys as well as values (default from config, or true)
  --case-sensitive      Match case exactly and skip stemming
  --explain             Show the signals behind each score
  --parents             Include ancestor nodes in the output
  --output string       Output format: text, compact, or json (default: text)

Datasets Flags:
  --config string    Config file path (used when --server is empty)
  --server string    Server URL (default: http://localhost:8080)
  --output string    Output format: text or json (default: text)

Examples:
  nlsearch server
  nlsearch search --file people.json alice engineer
  cat catalog.yaml | nlsearch search --input yaml "go programming"
  nlsearch search --file data.json --explain --min-score 0.5 "new york"
  nlsearch search --server http://localhost:8080 --dataset people alice
  nlsearch search --output json --file data.json query   # structured JSON for other apps
  nlsearch datasets`)
}
