// Package main is the Basho CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/basho/internal/cli"
	"github.com/hyperjump/basho/internal/config"
	"github.com/hyperjump/basho/internal/directory"
	"github.com/hyperjump/basho/internal/models"
	"github.com/hyperjump/basho/internal/search"
	"github.com/hyperjump/basho/internal/server"
	"github.com/hyperjump/basho/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/basho/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "basho server" from the project dir uses the project's
// config (including debug). Returns the config and the path actually loaded.
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
	case "search":
		runSearch()
	case "locations":
		runLocations()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("basho version %s\n", version)
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
	debug := fs.Bool("debug", false, "enable debug logging (directory requests, scoring, etc.)")
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

	components := initializeComponents(cfg, logger)
	defer components.Close()

	srv := server.NewServer(components.Engine, components.Directory, cfg, logger)
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

func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: basho search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
The query is parsed for capacity, facilities, locations, and dates; explicit
flags override whatever the parser extracts.
  • Use --capacity for a people count; capacity searches return a best-fit shortlist.
  • Use --require for a comma-separated facility list ("whiteboard,projector").
  • Use --from/--to for a booking window; availability is then checked live.

Examples:
  basho search room for 6 people with a whiteboard
  basho search "quiet desk on the 3rd floor"
  basho search --capacity 8 --require whiteboard,projector boardroom
  basho search --from 2024-06-01T09:00:00.000 --to 2024-06-01T10:00:00.000 huddle room
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word
// queries work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the
// query to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument, so "basho search \"query\"
// -capacity 6" would otherwise leave -capacity unparsed.
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

// splitRequirements parses a comma-separated facility list.
func splitRequirements(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = talk to the directory without a local server)")
	capacity := fs.Int("capacity", 0, "required number of people")
	kind := fs.String("kind", "", "location kind (ROOM, DESK, DESK_BANK, POD)")
	require := fs.String("require", "", "comma-separated facility requirements")
	from := fs.String("from", "", "booking window start (ISO 8601)")
	to := fs.String("to", "", "booking window end (ISO 8601)")
	parent := fs.String("parent", "", "restrict the search to one location subtree by ID")
	limit := fs.Int("limit", 0, "number of results (0 = server default)")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" && *capacity == 0 && *require == "" && *kind == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
		format = cli.OutputText
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	request := &models.SearchRequest{
		Query:            queryStr,
		Capacity:         *capacity,
		Requirements:     splitRequirements(*require),
		LocationKind:     *kind,
		DateFrom:         *from,
		DateTo:           *to,
		ParentLocationID: *parent,
		Limit:            *limit,
	}

	if *serverURL != "" {
		response, err := searchViaHTTP(*serverURL, request)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Direct mode: talk to the space directory without a local server.
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

	components := initializeComponents(cfg, logger)
	defer components.Close()

	response, err := components.Engine.Search(context.Background(), request)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL string, request *models.SearchRequest) (*models.SearchResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runLocations() {
	fs := flag.NewFlagSet("locations", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = talk to the directory directly)")
	kind := fs.String("kind", "", "filter by location kind")
	parent := fs.String("parent", "", "restrict to one location subtree by ID")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var locations []models.Location
	if *serverURL != "" {
		res, err := locationsViaHTTP(*serverURL, *kind, *parent)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Locations failed: %v\n", err)
			os.Exit(1)
		}
		locations = res
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
		components := initializeComponents(cfg, logger)
		defer components.Close()
		locations, err = components.Directory.LocationHierarchy(context.Background(), directory.HierarchyFilter{
			Kind:             *kind,
			ParentLocationID: *parent,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Locations failed: %v\n", err)
			os.Exit(1)
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]interface{}{"locations": locations}); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		for _, flattened := range models.Flatten(locations) {
			name := flattened.Name
			if flattened.QualifiedName != "" {
				name = flattened.QualifiedName
			}
			line := fmt.Sprintf("%-14s %s  (id %s", flattened.Kind, name, flattened.ID)
			if flattened.Capacity != nil {
				line += fmt.Sprintf(", seats %d", *flattened.Capacity)
			}
			line += ")"
			if flattened.Description != "" {
				line += "  " + cli.Truncate(flattened.Description, 60)
			}
			fmt.Println(line)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func locationsViaHTTP(serverURL, kind, parent string) ([]models.Location, error) {
	params := url.Values{}
	if kind != "" {
		params.Set("kind", kind)
	}
	if parent != "" {
		params.Set("parent_location_id", parent)
	}
	requestURL := serverURL + "/api/v1/locations"
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}
	resp, err := http.Get(requestURL)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var out struct {
		Locations []models.Location `json:"locations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.Locations, nil
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Get(*serverURL + "/api/v1/status")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Server returned %d: %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var status struct {
		Status string                 `json:"status"`
		Config map[string]interface{} `json:"config"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		fmt.Fprintf(os.Stderr, "Decode failed: %v\n", err)
		os.Exit(1)
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
		fmt.Printf("status: %s\n", status.Status)
		for key, value := range status.Config {
			fmt.Printf("%-26s %v\n", key+":", value)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Directory    *directory.Client
	Availability directory.AvailabilityChecker
	Engine       *search.Engine
	redisCache   *directory.RedisCache
}

func (c *Components) Close() {
	if c.redisCache != nil {
		_ = c.redisCache.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) *Components {
	var cache directory.Cache
	var redisCache *directory.RedisCache
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		redisCache = directory.NewRedisCache(cfg.Cache.RedisAddr, "basho:", logger)
		cache = redisCache
	default:
		cache = directory.NewMemoryCache(cfg.Cache.Size)
	}

	client := directory.NewClient(directory.ClientConfig{
		BaseURL:      cfg.Directory.BaseURL,
		Username:     cfg.Directory.Username,
		Password:     cfg.Directory.Password,
		Timeout:      cfg.Directory.Timeout(),
		MaxRetries:   cfg.Directory.MaxRetries,
		RetryDelay:   cfg.Directory.RetryDelay(),
		RetryBackoff: cfg.Directory.RetryBackoff,
		RateLimit:    cfg.Directory.RateLimitPerSec,
		RateBurst:    cfg.Directory.RateBurst,
		CacheTTL:     cfg.Directory.CacheTTL(),
	}, cache, logger)

	engine := search.NewEngine(client, client, &cfg.Search, &cfg.Ranking, logger)

	return &Components{
		Directory:    client,
		Availability: client,
		Engine:       engine,
		redisCache:   redisCache,
	}
}

func printUsage() {
	fmt.Println(`basho - bookable space search engine

Usage:
  basho server [flags]            Start the HTTP server
  basho search [flags] <query>    Search for a bookable space
  basho locations [flags]         List the location hierarchy
  basho status [flags]            Show server status and configuration
  basho version                   Show version
  basho help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/basho/config.yaml)
  --debug            Enable debug logging (directory requests, scoring, etc.)

Search Flags:
  --config string    Config file path (for direct mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to query the space directory without a local server.
  --capacity int     Required number of people
  --kind string      Location kind: ROOM, DESK, DESK_BANK, or POD
  --require string   Comma-separated facility requirements
  --from string      Booking window start (ISO 8601)
  --to string        Booking window end (ISO 8601)
  --parent string    Restrict the search to one location subtree by ID
  --limit int        Number of results (0 = server default)
  --output string    Output format: text or json (default: text)

Locations Flags:
  --server string    Server URL (default: http://localhost:8080)
  --kind string      Filter by location kind
  --parent string    Restrict to one location subtree by ID
  --output string    Output format: text or json (default: text)

Status Flags:
  --server string    Server URL (default: http://localhost:8080)
  --output string    Output format: text or json (default: text)

Examples:
  basho server
  basho search room for 6 people with a whiteboard
  basho search --capacity 8 --require whiteboard,projector
  basho search --output json "desk near the window"
  basho locations --kind ROOM
  basho status`)
}
