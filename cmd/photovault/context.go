package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"photovault/internal/api"
	"photovault/internal/config"
	"photovault/internal/library"
	"photovault/internal/logging"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// withService opens the library for the duration of one command. The store's
// instance lock is held until the command finishes.
func (c *commandContext) withService(cmd *cobra.Command, fn func(ctx context.Context, svc *api.Service) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := newCommandLogger(cfg)
	if err != nil {
		return err
	}

	store, err := library.Open(cfg.Paths.LibraryPath, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(cmd.Context(), api.NewService(cfg, store, logger))
}

// newCommandLogger routes structured logs to the log file so command stdout
// stays parseable.
func newCommandLogger(cfg *config.Config) (*slog.Logger, error) {
	if strings.TrimSpace(cfg.Paths.LogDir) == "" {
		return logging.NewNop(), nil
	}
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{filepath.Join(cfg.Paths.LogDir, "photovault.log")},
	})
}
