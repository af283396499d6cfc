package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeRetroAchievements(); err != nil {
		return err
	}
	if err := c.normalizeHasher(); err != nil {
		return err
	}
	c.normalizePlatforms()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRetroAchievements() error {
	c.RetroAchievements.APIKey = strings.TrimSpace(c.RetroAchievements.APIKey)
	if c.RetroAchievements.APIKey == "" {
		if value, ok := os.LookupEnv("RA_API_KEY"); ok {
			c.RetroAchievements.APIKey = strings.TrimSpace(value)
		}
	}
	c.RetroAchievements.BaseURL = strings.TrimRight(strings.TrimSpace(c.RetroAchievements.BaseURL), "/")
	if c.RetroAchievements.BaseURL == "" {
		c.RetroAchievements.BaseURL = defaultRABaseURL
	}
	return nil
}

func (c *Config) normalizeHasher() error {
	var err error
	if strings.TrimSpace(c.Hasher.BinaryPath) == "" {
		c.Hasher.BinaryPath = defaultHasherBinaryPath
	}
	if c.Hasher.BinaryPath, err = expandPath(c.Hasher.BinaryPath); err != nil {
		return fmt.Errorf("hasher.binary_path: %w", err)
	}
	c.Hasher.DownloadURL = strings.TrimSpace(c.Hasher.DownloadURL)
	if c.Hasher.DownloadURL == "" {
		c.Hasher.DownloadURL = defaultHasherDownloadURL
	}
	if c.Hasher.DownloadTimeout <= 0 {
		c.Hasher.DownloadTimeout = defaultHasherDownloadTimeout
	}
	if c.Hasher.HashTimeout <= 0 {
		c.Hasher.HashTimeout = defaultHasherHashTimeout
	}
	return nil
}

func (c *Config) normalizePlatforms() {
	platforms := make([]Platform, 0, len(c.Platforms))
	for _, p := range c.Platforms {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			continue
		}
		p.Override = strings.TrimSpace(p.Override)
		aliases := make([]string, 0, len(p.Aliases))
		for _, alias := range p.Aliases {
			alias = strings.TrimSpace(alias)
			if alias == "" {
				continue
			}
			aliases = append(aliases, alias)
		}
		p.Aliases = aliases
		platforms = append(platforms, p)
	}
	c.Platforms = platforms
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
