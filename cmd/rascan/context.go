package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"rascan/internal/config"
	"rascan/internal/logging"
	"rascan/internal/services/racatalog"
	"rascan/internal/services/rahasher"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
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
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger builds the configured logger. Log lines go to stderr and the log
// file; stdout stays clean for command output.
func (c *commandContext) logger(cfg *config.Config) *slog.Logger {
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return logging.NewNop()
	}
	return logger
}

func (c *commandContext) catalog(cfg *config.Config) *racatalog.Client {
	return racatalog.New(cfg.RetroAchievements.BaseURL, cfg.RetroAchievements.APIKey)
}

func (c *commandContext) hasherBootstrap(cfg *config.Config, logger *slog.Logger) *rahasher.Bootstrap {
	return rahasher.NewBootstrap(
		cfg.Hasher.BinaryPath,
		cfg.Hasher.DownloadURL,
		time.Duration(cfg.Hasher.DownloadTimeout)*time.Second,
		logger,
	)
}

func (c *commandContext) hasher(cfg *config.Config) (*rahasher.Client, error) {
	return rahasher.New(cfg.Hasher.BinaryPath, cfg.Hasher.HashTimeout)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
