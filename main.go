// notelink serves a collection of linked text notes. Notes reference
// each other with embedded [[id]] markers; the server maintains the
// derived backlink index and persists the whole collection as one JSON
// document. It speaks HTTP by default and MCP over stdio with -mcp.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/peterbourgon/ff/v3"

	"notelink/api"
	"notelink/notes"
	"notelink/storage"
)

var version = "dev"

// config holds the server configuration parameters.
type config struct {
	addr     string  // HTTP listen address
	dbPath   string  // path of the JSON snapshot document
	mcpMode  bool    // serve MCP over stdio instead of HTTP
	readOnly bool    // disable all write operations
	watch    bool    // reload the snapshot when the file changes on disk
	rps      float64 // HTTP requests per second limit
	burst    int     // HTTP request burst capacity
}

func main() {
	cfg, err := setupConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "notelink: %v\n", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	gateway := storage.New(cfg.dbPath)
	if cfg.watch {
		if err := gateway.Watch(); err != nil {
			log.Error("snapshot watcher", "error", err)
			os.Exit(1)
		}
		defer gateway.Close()
	}

	svc := notes.New(gateway)

	if cfg.mcpMode {
		srv := newServer(svc, cfg.readOnly)
		if err := srv.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
			fmt.Fprintf(os.Stderr, "notelink: %v\n", err)
			os.Exit(1)
		}
		return
	}

	srv := api.New(svc, log, version, cfg.readOnly)
	router := srv.Router(api.Throttle(cfg.rps, cfg.burst))

	log.Info("listening", "addr", cfg.addr, "db", cfg.dbPath, "readOnly", cfg.readOnly)
	if err := http.ListenAndServe(cfg.addr, router); err != nil {
		log.Error("server", "error", err)
		os.Exit(1)
	}
}

// setupConfig parses flags, NOTELINK_* environment variables, and an
// optional config file.
func setupConfig(args []string) (config, error) {
	fs := flag.NewFlagSet("notelink", flag.ExitOnError)

	var cfg config
	fs.StringVar(&cfg.addr, "addr", ":8080", "HTTP listen address")
	fs.StringVar(&cfg.dbPath, "db", "notelink.json", "Path of the JSON note document")
	fs.BoolVar(&cfg.mcpMode, "mcp", false, "Serve MCP over stdio instead of HTTP")
	fs.BoolVar(&cfg.readOnly, "read-only", false, "Disable all write operations")
	fs.BoolVar(&cfg.watch, "watch", true, "Reload the snapshot when the file changes on disk")
	fs.Float64Var(&cfg.rps, "rate", 50, "Requests per second limit")
	fs.IntVar(&cfg.burst, "burst", 100, "Request burst capacity")

	var configFile string
	fs.StringVar(&configFile, "config", "", "Config file path")

	err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix("NOTELINK"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		return cfg, fmt.Errorf("parse configuration: %w", err)
	}

	if cfg.dbPath == "" {
		return cfg, fmt.Errorf("db path must not be empty")
	}
	return cfg, nil
}
