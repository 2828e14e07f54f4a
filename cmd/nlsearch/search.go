package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/nlsearch/internal/cli"
	"github.com/hyperjump/nlsearch/internal/config"
	"github.com/hyperjump/nlsearch/internal/dataset"
	"github.com/hyperjump/nlsearch/internal/models"
	"github.com/hyperjump/nlsearch/internal/search"
	"github.com/hyperjump/nlsearch/pkg/tree"
	"github.com/hyperjump/nlsearch/pkg/utils"
	"go.uber.org/zap"
)

// printSearchUsage prints search subcommand usage.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: nlsearch search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Every node of the document is scored against the query; nodes reaching --min-score
are printed best first with their path from the root.
  • Use --keys=false to ignore object keys and match values only.
  • Use --explain to see the phrase, similarity, token and dice signals per result.

Examples:
  nlsearch search --file people.json alice engineer
  nlsearch search --file people.json "alice engineer"     # same as above
  cat config.yaml | nlsearch search --input yaml timeout
  nlsearch search --dataset catalog --limit 5 go books
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchConfigPathFromArgs returns the value of -config/--config from args if present, else defaultPath.
func searchConfigPathFromArgs(args []string, defaultPath string) string {
	for i, a := range args {
		if (a == "-config" || a == "--config") && i+1 < len(args) {
			return args[i+1]
		}
		for _, prefix := range []string{"-config=", "--config="} {
			if strings.HasPrefix(a, prefix) {
				return strings.TrimPrefix(a, prefix)
			}
		}
	}
	return defaultPath
}

// searchDefaultsFromConfig loads config at path for flag defaults. On load
// failure it returns built-in defaults.
func searchDefaultsFromConfig(path string) *config.Config {
	cfg, _, err := loadConfig(path)
	if err != nil || cfg == nil {
		return config.Default()
	}
	return cfg
}

// searchArgsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument, so "nlsearch search alice -min-score 0.5"
// would otherwise leave -min-score unparsed.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// detectInputFormat returns "json" or "yaml". An explicit format wins; otherwise
// the file extension decides and anything else is JSON.
func detectInputFormat(path, explicit string) (string, error) {
	switch strings.ToLower(explicit) {
	case "json":
		return "json", nil
	case "yaml", "yml":
		return "yaml", nil
	case "":
	default:
		return "", fmt.Errorf("unknown input format %q; use json or yaml", explicit)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "json", nil
	}
}

// readInput parses the document at path, or stdin when path is empty or "-".
func readInput(path, format string, stdin io.Reader) (*tree.Node, error) {
	format, err := detectInputFormat(path, format)
	if err != nil {
		return nil, err
	}
	var data []byte
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if format == "yaml" {
		return tree.ParseYAML(data)
	}
	return tree.Parse(data)
}

// localSearch runs req against data in-process using cfg's engine settings.
func localSearch(cfg *config.Config, logger *zap.Logger, data *tree.Node, req *models.SearchRequest) (*models.SearchResponse, error) {
	engine, err := buildEngine(cfg, logger)
	if err != nil {
		return nil, err
	}
	return models.NewSearchResponse(req, engine.Execute(data, req.Query, req.Options)), nil
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])
	configPath := searchConfigPathFromArgs(searchArgs, defaultConfigPath)
	defaults := searchDefaultsFromConfig(configPath).Search.Defaults()

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPathFlag := fs.String("config", defaultConfigPath, "config file path")
	file := fs.String("file", "", "input file (empty or - = stdin)")
	inputFormat := fs.String("input", "", "input format: json or yaml (default: from file extension)")
	datasetName := fs.String("dataset", "", "search a configured dataset instead of -file")
	serverURL := fs.String("server", "", "server URL (empty = search in-process)")
	minScore := fs.Float64("min-score", defaults.MinScore, "minimum score for a node to be reported")
	limit := fs.Int("limit", 0, "maximum number of results (0 = all)")
	offset := fs.Int("offset", 0, "skip this many ranked results")
	keys := fs.Bool("keys", defaults.SearchKeys, "match object keys as well as values")
	caseSensitive := fs.Bool("case-sensitive", defaults.CaseSensitive, "match case exactly and skip stemming")
	explain := fs.Bool("explain", false, "show the signals behind each score")
	parents := fs.Bool("parents", false, "include ancestor nodes in the output")
	outputFormat := fs.String("output", "text", "output format: text (human-readable), compact (one result per line), or json (parseable)")
	debug := fs.Bool("debug", false, "enable debug logging")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	req := &models.SearchRequest{
		Query: queryStr,
		Options: &search.Options{
			MinScore:      minScore,
			SearchKeys:    keys,
			CaseSensitive: caseSensitive,
			Explain:       *explain,
		},
		IncludeParents: *parents,
		Offset:         *offset,
		Limit:          *limit,
	}
	if err := req.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid search: %v\n", err)
		os.Exit(1)
	}

	var response *models.SearchResponse
	switch {
	case *serverURL != "" && *datasetName != "":
		response, err = searchViaHTTP(*serverURL, "/api/v1/datasets/"+url.PathEscape(*datasetName)+"/search", req)
	case *serverURL != "":
		data, readErr := readInput(*file, *inputFormat, os.Stdin)
		if readErr != nil {
			fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", readErr)
			os.Exit(1)
		}
		response, err = searchViaHTTP(*serverURL, "/api/v1/search", &models.InlineSearchRequest{SearchRequest: *req, Data: data})
	default:
		response, err = runLocalSearch(*configPathFlag, *datasetName, *file, *inputFormat, *debug, req)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runLocalSearch(configPath, datasetName, file, inputFormat string, debug bool, req *models.SearchRequest) (*models.SearchResponse, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := utils.NewCLILogger(cfg.Debug || debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	var data *tree.Node
	if datasetName != "" {
		path, ok := cfg.Datasets[datasetName]
		if !ok {
			return nil, fmt.Errorf("%w: %s", dataset.ErrNotFound, datasetName)
		}
		data, err = dataset.LoadFile(path)
	} else {
		data, err = readInput(file, inputFormat, os.Stdin)
	}
	if err != nil {
		return nil, err
	}

	response, err := localSearch(cfg, logger, data, req)
	if err != nil {
		return nil, err
	}
	response.Dataset = datasetName
	return response, nil
}

func searchViaHTTP(serverURL, path string, body interface{}) (*models.SearchResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(strings.TrimRight(serverURL, "/")+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}
