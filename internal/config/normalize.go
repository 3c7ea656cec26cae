package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeImport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LibraryPath) == "" {
		c.Paths.LibraryPath = defaultLibraryPath
	}
	if c.Paths.LibraryPath, err = expandPath(c.Paths.LibraryPath); err != nil {
		return fmt.Errorf("paths.library_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.DefaultStorageRoot) == "" {
		c.Paths.DefaultStorageRoot = defaultDefaultStorageRoot
	}
	if c.Paths.DefaultStorageRoot, err = expandPath(c.Paths.DefaultStorageRoot); err != nil {
		return fmt.Errorf("paths.default_storage_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeImport() {
	if len(c.Import.Extensions) == 0 {
		c.Import.Extensions = append([]string(nil), defaultExtensions...)
		return
	}
	normalized := make([]string, 0, len(c.Import.Extensions))
	seen := map[string]struct{}{}
	for _, ext := range c.Import.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		normalized = append(normalized, ext)
	}
	c.Import.Extensions = normalized
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
