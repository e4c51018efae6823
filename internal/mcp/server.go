// Package mcp provides an MCP (Model Context Protocol) server exposing
// MESA run discovery, summaries and plotting as tools.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mesa-tools/mesaplot/internal/catalog"
)

// Server wraps the MCP SDK server.
type Server struct {
	server  *sdk.Server
	catalog *catalog.Store
	cfg     *Config
	logger  *slog.Logger
}

// Config holds server configuration.
type Config struct {
	Name        string // Server name (e.g., "mesaplot")
	Version     string // Server version
	RunsDir     string // Directory holding one subdirectory per run
	CatalogPath string // SQLite catalog path; empty disables the catalog
	PlotsDir    string // Output directory for rendered plots
	Width       int
	Height      int
	Logger      *slog.Logger
}

// NewServer creates a new MCP server with the mesaplot tools.
func NewServer(cfg *Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	var store *catalog.Store
	if cfg.CatalogPath != "" {
		var err error
		store, err = catalog.Open(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog: %w", err)
		}
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, req *sdk.InitializedRequest) {
			// Client initialized, ready to serve
		},
	})

	s := &Server{
		server:  mcpServer,
		catalog: store,
		cfg:     cfg,
		logger:  cfg.Logger,
	}
	s.registerTools()

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		cancel()
	}()

	err := s.server.Run(ctx, &sdk.StdioTransport{})

	if closeErr := s.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// Close releases the catalog handle.
func (s *Server) Close() error {
	if s.catalog == nil {
		return nil
	}
	return s.catalog.Close()
}

func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "mesa_runs",
		Description: "Discover MESA runs in the runs directory and summarize each one's final model",
	}, s.handleRuns)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "mesa_summary",
		Description: "Summarize a single MESA run: parameters, photometric system and final-model values",
	}, s.handleSummary)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "mesa_columns",
		Description: "List the header and body columns of a MESA history or profile file",
	}, s.handleColumns)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "mesa_plot",
		Description: "Render a plot (cmd, core, composition or lightcurve) for a run's history to a PNG file",
	}, s.handlePlot)
}
