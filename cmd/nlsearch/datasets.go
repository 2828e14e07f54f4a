package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/hyperjump/nlsearch/internal/dataset"
)

// datasetsResponse is the shape of GET /api/v1/datasets.
type datasetsResponse struct {
	Datasets []dataset.Info `json:"datasets"`
	Total    int            `json:"total"`
}

func runDatasets() {
	fs := flag.NewFlagSet("datasets", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = load datasets from config)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var list *datasetsResponse
	var err error
	if *serverURL != "" {
		list, err = datasetsViaHTTP(*serverURL)
	} else {
		list, err = datasetsFromConfig(*configPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Datasets failed: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(list); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		writeDatasetsText(os.Stdout, list)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func writeDatasetsText(w io.Writer, list *datasetsResponse) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tNODES\tPATH")
	for _, ds := range list.Datasets {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", ds.Name, ds.Nodes, ds.Path)
	}
	_ = tw.Flush()
}

// datasetsFromConfig loads every configured dataset to report its size.
func datasetsFromConfig(configPath string) (*datasetsResponse, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	store := dataset.NewStore(nil)
	loadErr := store.LoadAll(cfg.Datasets)
	list := store.List()
	return &datasetsResponse{Datasets: list, Total: len(list)}, loadErr
}

func datasetsViaHTTP(serverURL string) (*datasetsResponse, error) {
	resp, err := http.Get(strings.TrimRight(serverURL, "/") + "/api/v1/datasets")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var out datasetsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
