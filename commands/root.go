// Package commands implements the karma CLI.
package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/c360studio/karma/config"
	"github.com/c360studio/karma/extract"
	"github.com/c360studio/karma/graph"
	"github.com/c360studio/karma/llm"
	"github.com/c360studio/karma/pipeline"
	"github.com/c360studio/karma/storage"
	"github.com/spf13/cobra"
)

// Version is the CLI version, overridable at build time.
var Version = "0.1.0"

// NewRootCmd builds the karma command tree.
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "karma",
		Short: "Versioned usage knowledge graphs from software documentation",
		Long: `Karma builds knowledge graphs of how software is used.

It ingests documentation (tutorials, references, guides) to extract UI
elements, features, procedures, and their relationships, and processes
release notes to detect changes and deprecate invalidated knowledge.
Every fact carries the version range in which it holds.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	env := &environment{configPath: &configPath, logLevel: &logLevel}

	cmd.AddCommand(
		newIngestCmd(env),
		newUpdateCmd(env),
		newQueryCmd(env),
		newExportCmd(env),
		newStatsCmd(env),
		newWatchCmd(env),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("karma version %s\n", Version)
			},
		},
	)

	return cmd
}

// environment carries the persistent flag values into subcommands, which
// resolve them lazily at run time.
type environment struct {
	configPath *string
	logLevel   *string
}

func (e *environment) logger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(*e.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (e *environment) config(logger *slog.Logger) (*config.Config, error) {
	if *e.configPath != "" {
		cfg, err := config.LoadFromFile(*e.configPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, nil
	}
	return config.NewLoader(logger).Load()
}

// app bundles the wired components a command needs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	graph  *graph.Graph
	pipe   *pipeline.Pipeline
}

// buildApp loads config, opens (or creates) the knowledge graph, and wires
// the extraction pipeline.
func (e *environment) buildApp() (*app, error) {
	logger := e.logger()

	cfg, err := e.config(logger)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	g, err := openGraph(cfg, logger)
	if err != nil {
		return nil, err
	}

	client := llm.NewClient(llm.Endpoint{
		Provider: cfg.Model.Provider,
		URL:      cfg.Model.Endpoint,
		Model:    cfg.Model.Name,
	},
		llm.WithLogger(logger),
		llm.WithHTTPClient(&http.Client{Timeout: cfg.Model.Timeout}),
	)

	service := extract.NewExtractor(client,
		extract.WithLogger(logger),
		extract.WithTemperature(cfg.Model.Temperature),
	)

	pipe := pipeline.New(service, g,
		pipeline.WithLogger(logger),
		pipeline.WithMaxSegmentLength(cfg.Pipeline.MaxSegmentLength),
		pipeline.WithFailFast(cfg.Pipeline.FailFast),
	)

	return &app{cfg: cfg, logger: logger, graph: g, pipe: pipe}, nil
}

// openGraph loads the persisted graph, or starts an empty one when no file
// exists yet.
func openGraph(cfg *config.Config, logger *slog.Logger) (*graph.Graph, error) {
	doc, err := storage.LoadGraph(cfg.Storage.GraphPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("Starting new knowledge graph", "path", cfg.Storage.GraphPath)
			return graph.New(), nil
		}
		return nil, err
	}

	logger.Info("Loaded knowledge graph",
		"path", cfg.Storage.GraphPath,
		"entities", len(doc.Entities),
		"triples", len(doc.Triples))
	return graph.Import(doc), nil
}

// save persists the graph to JSON and, when configured, to SQLite.
func (a *app) save(cmd *cobra.Command) error {
	doc := a.graph.Export()

	if err := storage.SaveGraph(a.cfg.Storage.GraphPath, doc); err != nil {
		return fmt.Errorf("save graph: %w", err)
	}
	a.logger.Info("Knowledge graph saved", "path", a.cfg.Storage.GraphPath)

	if a.cfg.Storage.SQLitePath != "" {
		store, err := storage.OpenSQLite(a.cfg.Storage.SQLitePath)
		if err != nil {
			return fmt.Errorf("open sqlite: %w", err)
		}
		defer store.Close()

		id, err := store.Save(cmd.Context(), doc)
		if err != nil {
			return fmt.Errorf("save sqlite snapshot: %w", err)
		}
		a.logger.Info("SQLite snapshot saved", "path", a.cfg.Storage.SQLitePath, "id", id)
	}

	return nil
}
