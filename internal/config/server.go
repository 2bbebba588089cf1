package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/docker/go-units"
)

const (
	EnvServerAddr          = "DOCPREVIEW_ADDR"
	EnvServerDocsDir       = "DOCPREVIEW_DOCS_DIR"
	EnvServerMaxUploadSize = "DOCPREVIEW_MAX_UPLOAD_SIZE"
	EnvServerMaxConns      = "DOCPREVIEW_MAX_CONNECTIONS"
)

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address. Default: ":8080"
	Addr string `toml:"addr"`
	// DocsDir holds the documents served for preview and receives uploads.
	// Default: "documents"
	DocsDir          string `toml:"docs_dir"`
	MaxUploadSize    string `toml:"max_upload_size"`
	maxUploadSizeVal int64
	// MaxConnections caps concurrent connections. Default: 64
	MaxConnections int `toml:"max_connections"`
}

// MaxUploadSizeBytes returns the parsed upload limit. It is set by Finalize.
func (c *ServerConfig) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the server configuration.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Addr != "" {
		c.Addr = overlay.Addr
	}
	if overlay.DocsDir != "" {
		c.DocsDir = overlay.DocsDir
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.MaxConnections != 0 {
		c.MaxConnections = overlay.MaxConnections
	}
}

func (c *ServerConfig) loadDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.DocsDir == "" {
		c.DocsDir = "documents"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
	if c.MaxConnections == 0 {
		c.MaxConnections = 64
	}
}

func (c *ServerConfig) loadEnv() error {
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Addr = v
	}
	if v := os.Getenv(EnvServerDocsDir); v != "" {
		c.DocsDir = v
	}
	if v := os.Getenv(EnvServerMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
	if v := os.Getenv(EnvServerMaxConns); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvServerMaxConns, err)
		}
		c.MaxConnections = n
	}
	return nil
}

func (c *ServerConfig) validate() error {
	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	if c.MaxConnections < 1 {
		return fmt.Errorf("max_connections must be positive")
	}
	return nil
}
