// Package main is the Concordia CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ateneolabs/concordia/internal/cli"
	"github.com/ateneolabs/concordia/internal/config"
	"github.com/ateneolabs/concordia/internal/models"
	"github.com/ateneolabs/concordia/internal/resolve"
	"github.com/ateneolabs/concordia/internal/scoring"
	"github.com/ateneolabs/concordia/internal/server"
	"github.com/ateneolabs/concordia/internal/storage"
	"github.com/ateneolabs/concordia/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/concordia/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used,
// so that "concordia server" from the project dir uses the project's config.
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
	case "server":
		runServer()
	case "score":
		runScore()
	case "runs":
		runRuns()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("concordia version %s\n", version)
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
	debug := fs.Bool("debug", false, "enable debug logging (per-request scoring details)")
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
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	srv := server.NewServer(components.Engine, components.Resolver, components.Storage, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// scoreInput is the JSON accepted by the score command: either an object
// with rows/catalog/strategy keys or a bare array of row maps.
type scoreInput struct {
	Strategy string           `json:"strategy,omitempty"`
	Rows     []map[string]any `json:"rows"`
	Catalog  []map[string]any `json:"catalog,omitempty"`
}

// readScoreInput reads the score input from path, or stdin when path is
// empty or "-".
func readScoreInput(path string) (*scoreInput, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var input scoreInput
	if err := json.Unmarshal(data, &input); err != nil {
		var rows []map[string]any
		if arrErr := json.Unmarshal(data, &rows); arrErr != nil {
			return nil, fmt.Errorf("failed to parse input: %w", err)
		}
		input.Rows = rows
	}
	return &input, nil
}

// readCatalogFile reads a JSON array of catalog records from path.
func readCatalogFile(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var catalog []map[string]any
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return catalog, nil
}

func parseOutputFormat(name string) (cli.OutputFormat, error) {
	switch name {
	case "json":
		return cli.OutputJSON, nil
	case "text", "":
		return cli.OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", name)
	}
}

func runScore() {
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	strategy := fs.String("strategy", "", "scoring strategy: similarity or keyword (default from config)")
	catalogPath := fs.String("catalog", "", "JSON file with catalog records (overrides the input's catalog)")
	save := fs.Bool("save", false, "persist the run to storage")
	serverURL := fs.String("server", "", "server URL (empty = score locally in-process)")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printScoreUsage(fs) }
	_ = fs.Parse(os.Args[2:])

	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	input, err := readScoreInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *strategy != "" {
		input.Strategy = *strategy
	}
	if *catalogPath != "" {
		catalog, err := readCatalogFile(*catalogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		input.Catalog = catalog
	}

	if *serverURL != "" {
		runID, result, err := scoreViaHTTP(*serverURL, input, *save)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Scoring failed: %v\n", err)
			os.Exit(1)
		}
		if runID != "" {
			fmt.Fprintf(os.Stderr, "Run saved: %s\n", runID)
		}
		if err := cli.WriteScoreResult(os.Stdout, result, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	req := &models.ScoreRequest{
		Strategy: input.Strategy,
		Rows:     components.Resolver.Records(input.Rows),
		Catalog:  components.Resolver.Catalog(input.Catalog),
	}
	result, err := components.Engine.Score(context.Background(), req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scoring failed: %v\n", err)
		os.Exit(1)
	}

	if *save {
		run := models.NewRunFromResult(uuid.New().String(), result)
		if err := components.Storage.CreateRun(context.Background(), run, result.Rows); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save run: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Run saved: %s\n", run.ID)
	}
	if err := cli.WriteScoreResult(os.Stdout, result, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func printScoreUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: concordia score [flags] <input.json>\n\n")
	fmt.Fprintf(fs.Output(), "Input is a JSON object {rows, catalog?, strategy?} or a bare array of rows.\n")
	fmt.Fprintf(fs.Output(), "Rows are loose field maps; spreadsheet column names are resolved automatically.\n")
	fmt.Fprintf(fs.Output(), "Use \"-\" (or no argument) to read from stdin.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  concordia score activities.json
  concordia score -strategy keyword activities.json
  concordia score -catalog objectives.json -save activities.json
  cat activities.json | concordia score -output json
`)
}

func scoreViaHTTP(serverURL string, input *scoreInput, save bool) (string, *models.ScoreResult, error) {
	body, err := json.Marshal(map[string]any{
		"strategy": input.Strategy,
		"rows":     input.Rows,
		"catalog":  input.Catalog,
		"save":     save,
	})
	if err != nil {
		return "", nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/score", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var out struct {
		RunID string `json:"run_id"`
		models.ScoreResult
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", nil, fmt.Errorf("decode response: %w", err)
	}
	return out.RunID, &out.ScoreResult, nil
}

func runRuns() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: concordia runs <list|show|delete> [flags] [run-id]")
		fmt.Println("  concordia runs list           List stored scoring runs")
		fmt.Println("  concordia runs show <id>      Show one run with its scored rows")
		fmt.Println("  concordia runs delete <id>    Delete a stored run")
		os.Exit(1)
	}
	sub := os.Args[2]
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	limit := fs.Int("limit", 20, "number of runs to list")
	offset := fs.Int("offset", 0, "listing offset")
	_ = fs.Parse(os.Args[3:])

	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	ctx := context.Background()
	switch sub {
	case "list":
		runs, err := components.Storage.ListRuns(ctx, *offset, *limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list runs: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteRunList(os.Stdout, runs, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "show":
		if fs.NArg() < 1 {
			fmt.Println("Usage: concordia runs show [flags] <run-id>")
			os.Exit(1)
		}
		id := fs.Arg(0)
		run, err := components.Storage.GetRun(ctx, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		rows, err := components.Storage.GetRunRows(ctx, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load run rows: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteRun(os.Stdout, run, rows, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "delete":
		if fs.NArg() < 1 {
			fmt.Println("Usage: concordia runs delete [flags] <run-id>")
			os.Exit(1)
		}
		id := fs.Arg(0)
		if err := components.Storage.DeleteRun(ctx, id); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Run deleted: %s\n", id)
	default:
		fmt.Printf("Unknown runs subcommand: %s\n", sub)
		os.Exit(1)
	}
}

// statusConfigResponse holds configuration info returned by status.
type statusConfigResponse struct {
	Strategy        string `json:"strategy"`
	Workers         int    `json:"workers"`
	NgramMin        int    `json:"ngram_min"`
	NgramMax        int    `json:"ngram_max"`
	Categories      int    `json:"categories"`
	DefaultCategory string `json:"default_category"`
	DatabasePath    string `json:"database_path,omitempty"`
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Runs           int64                 `json:"runs"`
	ScoredRows     int64                 `json:"scored_rows"`
	DiskUsageBytes *int64                `json:"disk_usage_bytes,omitempty"`
	Config         *statusConfigResponse `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = read storage directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer components.Close()

		ctx := context.Background()
		runCount, err := components.Storage.CountRuns(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count runs failed: %v\n", err)
			os.Exit(1)
		}
		rowCount, err := components.Storage.CountRows(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count rows failed: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Runs:       runCount,
			ScoredRows: rowCount,
			Config: &statusConfigResponse{
				Strategy:        cfg.Scoring.Strategy,
				Workers:         cfg.Scoring.Workers,
				NgramMin:        cfg.Scoring.NgramMin,
				NgramMax:        cfg.Scoring.NgramMax,
				Categories:      len(cfg.Scoring.Categories),
				DefaultCategory: cfg.Scoring.DefaultCategory,
				DatabasePath:    cfg.Storage.DatabasePath,
			},
		}
		if diskBytes, err := components.Storage.DiskUsageBytes(); err == nil {
			status.DiskUsageBytes = &diskBytes
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("runs:          %d   # stored scoring runs\n", status.Runs)
		fmt.Printf("scored_rows:   %d   # row verdicts across all runs\n", status.ScoredRows)
		if status.DiskUsageBytes != nil {
			fmt.Printf("disk_usage:    %d   # storage bytes on disk\n", *status.DiskUsageBytes)
		}
		if status.Config != nil {
			fmt.Println()
			fmt.Println("# configuration")
			fmt.Printf("strategy:      %s\n", status.Config.Strategy)
			fmt.Printf("workers:       %d\n", status.Config.Workers)
			fmt.Printf("ngrams:        %d-%d\n", status.Config.NgramMin, status.Config.NgramMax)
			fmt.Printf("categories:    %d (default %s)\n", status.Config.Categories, status.Config.DefaultCategory)
			if status.Config.DatabasePath != "" {
				fmt.Printf("database_path: %s\n", status.Config.DatabasePath)
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds initialized services.
type Components struct {
	Storage  storage.Storage
	Engine   *scoring.Engine
	Resolver *resolve.Resolver
}

func (c *Components) Close() {
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return &Components{
		Storage:  store,
		Engine:   scoring.NewEngine(&cfg.Scoring, logger),
		Resolver: resolve.NewResolver(&cfg.Resolve),
	}, nil
}

func printUsage() {
	fmt.Println(`concordia - Strategic plan consistency scoring engine

Usage:
  concordia server [flags]               Start the HTTP API server
  concordia score [flags] <input.json>   Score activity rows against an objective catalog
  concordia runs <list|show|delete>      Manage stored scoring runs
  concordia status [flags]               Show storage and configuration status
  concordia version                      Show version
  concordia help                         Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/concordia/config.yaml)
  --debug            Enable debug logging (per-request scoring details)

Score Flags:
  --config string    Config file path
  --strategy string  Scoring strategy: similarity or keyword (default from config)
  --catalog string   JSON file with catalog records (overrides the input's catalog)
  --save             Persist the run to storage
  --server string    Server URL (empty = score locally in-process)
  --output string    Output format: text or json (default: text)

Runs Flags:
  --config string    Config file path
  --output string    Output format: text or json (default: text)
  --limit int        Number of runs to list (default: 20)
  --offset int       Listing offset (default: 0)

Status Flags:
  --config string    Config file path
  --server string    Server URL (empty = read storage directly)
  --output string    Output format: text or json (default: text)

Examples:
  concordia server
  concordia score activities.json
  concordia score -strategy keyword -output json activities.json
  concordia score -catalog objectives.json -save activities.json
  cat activities.json | concordia score
  concordia runs list
  concordia runs show 2f9f2b7c-6c9a-4f0e-9f6d-1d2c3b4a5e6f
  concordia runs delete 2f9f2b7c-6c9a-4f0e-9f6d-1d2c3b4a5e6f
  concordia status
  concordia status --output json`)
}
