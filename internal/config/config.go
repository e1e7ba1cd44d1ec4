package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"voxelchunks/internal/delscript"
	"voxelchunks/internal/report"
)

// ErrInvalid wraps every Validate failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	// ShellSaveType selects the deletion script dialect: "bat" or "bash".
	// It is checked when a script is requested, not at load time.
	ShellSaveType string `yaml:"shell_save_type"`

	WorldDir  string `yaml:"world_dir"`
	OutputDir string `yaml:"output_dir"`
	PageSize  int    `yaml:"page_size"`

	AuditDir string `yaml:"audit_dir"`
	IndexDB  string `yaml:"index_db"`

	Listen string `yaml:"listen"`
}

func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("delchunks.yaml: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("delchunks.yaml: %w", err)
	}
	return cfg, nil
}

func Defaults() Config {
	return Config{
		WorldDir:  delscript.DefaultWorldDir,
		OutputDir: ".",
		PageSize:  report.DefaultPerPage,
		AuditDir:  "./data/audit",
		IndexDB:   "./data/index/delchunks.sqlite",
		Listen:    "127.0.0.1:8085",
	}
}

func (c *Config) Normalize() {
	if c == nil {
		return
	}
	c.ShellSaveType = strings.TrimSpace(c.ShellSaveType)
	if strings.TrimSpace(c.WorldDir) == "" {
		c.WorldDir = delscript.DefaultWorldDir
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = "."
	}
	if c.PageSize <= 0 {
		c.PageSize = report.DefaultPerPage
	}
	c.AuditDir = strings.TrimSpace(c.AuditDir)
	c.IndexDB = strings.TrimSpace(c.IndexDB)
	c.Listen = strings.TrimSpace(c.Listen)
}

func (c Config) Validate() error {
	c.Normalize()
	if strings.ContainsAny(c.WorldDir, "\"\r\n") {
		return fmt.Errorf("%w: world_dir %q must not contain quotes or line breaks", ErrInvalid, c.WorldDir)
	}
	if c.PageSize > 1000 {
		return fmt.Errorf("%w: page_size must be <= 1000", ErrInvalid)
	}
	return nil
}

// Dialect resolves ShellSaveType. Unset and unknown values are returned as
// delscript.ErrDialectUnset / delscript.ErrDialectUnknown.
func (c Config) Dialect() (delscript.Dialect, error) {
	return delscript.ParseDialect(c.ShellSaveType)
}
