// Package app provides the dependency injection container for the application.
package app

import (
	"github.com/labtrack/labtrack/internal/domain"
	"github.com/labtrack/labtrack/internal/infra/config"
	"github.com/labtrack/labtrack/internal/infra/jsonstore"
	"github.com/labtrack/labtrack/internal/infra/logging"
	"github.com/labtrack/labtrack/internal/taskdb"
)

// Container wires the configuration, storage, and database layer together.
// CLI and TUI code reach everything through it.
type Container struct {
	DB     *taskdb.DB
	Store  domain.DocumentStore
	Clock  domain.Clock
	Logger *logging.Logger
	Config *config.Config
}

// NewWithDeps creates a Container from pre-built dependencies. Used by tests.
func NewWithDeps(cfg *config.Config, db *taskdb.DB, store domain.DocumentStore, clock domain.Clock) *Container {
	return &Container{
		DB:     db,
		Store:  store,
		Clock:  clock,
		Config: cfg,
	}
}

// New builds a Container for the given working directory: configuration is
// loaded from the global and workspace TOML files, the document store is
// opened at the configured path, and the task database is loaded from it.
func New(workDir string) (*Container, error) {
	cfg, err := config.NewLoader(workDir).Load()
	if err != nil {
		return nil, err
	}
	return newWithConfig(cfg)
}

// NewWithStorePath builds a Container that reads and writes a specific
// document file, bypassing the configured data directory. Used by the
// --file flag.
func NewWithStorePath(workDir, storePath string) (*Container, error) {
	cfg, err := config.NewLoader(workDir).Load()
	if err != nil {
		return nil, err
	}
	cfg.Data.Dir = ""
	cfg.Data.File = storePath
	return newWithConfig(cfg)
}

func newWithConfig(cfg *config.Config) (*Container, error) {
	logger := logging.New(cfg.Data.Dir, logging.ParseLevel(cfg.Log.Level))
	store := jsonstore.New(cfg.StorePath(), logger)
	clock := domain.RealClock{}

	db, err := taskdb.Open(store, clock, logger)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	return &Container{
		DB:     db,
		Store:  store,
		Clock:  clock,
		Logger: logger,
		Config: cfg,
	}, nil
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.Logger != nil {
		return c.Logger.Close()
	}
	return nil
}
