package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRetroAchievements(); err != nil {
		return err
	}
	if err := c.validateHasher(); err != nil {
		return err
	}
	return c.validatePlatforms()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		return errors.New("paths.library_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateRetroAchievements() error {
	if c.RetroAchievements.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/rascan/config.toml"
		}
		return fmt.Errorf("retroachievements.api_key is required. Set RA_API_KEY env var or edit %s (create with 'rascan config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateHasher() error {
	if strings.TrimSpace(c.Hasher.DownloadURL) == "" {
		return errors.New("hasher.download_url must be set")
	}
	if c.Hasher.DownloadTimeout <= 0 {
		return errors.New("hasher.download_timeout must be positive (seconds)")
	}
	if c.Hasher.HashTimeout <= 0 {
		return errors.New("hasher.hash_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validatePlatforms() error {
	if len(c.Platforms) == 0 {
		return errors.New("platforms must define at least one mapping")
	}
	seen := make(map[string]struct{}, len(c.Platforms))
	for _, p := range c.Platforms {
		key := strings.ToLower(p.Name)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("platforms: duplicate canonical name %q", p.Name)
		}
		seen[key] = struct{}{}
	}
	return nil
}
