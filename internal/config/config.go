// Package config loads the weekboard settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/weekboard/internal/constants"
)

const defaultConfigYAML = `# weekboard configuration

# Board store. Files ending in .json use the JSON store, anything else SQLite.
storage_path: ~/.config/weekboard/weekboard.db
board_key: current

history_capacity: 100
autosave_debounce: 500ms
default_required_workers: 1

log:
  debug: false

export:
  # Optional .xlsx with the target layout; generated when empty.
  template_path: ""
  output_dir: .
  sheet: Grafik
  work_text: "7:00-15:00"

backup:
  max_backups: 14
  # Periodic backups while the TUI is open. 0 disables them.
  interval: 30m
`

type LogConfig struct {
	Debug bool `yaml:"debug"`
}

type ExportConfig struct {
	TemplatePath string `yaml:"template_path"`
	OutputDir    string `yaml:"output_dir"`
	Sheet        string `yaml:"sheet"`
	WorkText     string `yaml:"work_text"`
}

type BackupConfig struct {
	MaxBackups int           `yaml:"max_backups"`
	Interval   time.Duration `yaml:"interval"`
}

// Config models config.yaml.
type Config struct {
	StoragePath            string        `yaml:"storage_path"`
	BoardKey               string        `yaml:"board_key"`
	HistoryCapacity        int           `yaml:"history_capacity"`
	AutosaveDebounce       time.Duration `yaml:"autosave_debounce"`
	DefaultRequiredWorkers int           `yaml:"default_required_workers"`
	Log                    LogConfig     `yaml:"log"`
	Export                 ExportConfig  `yaml:"export"`
	Backup                 BackupConfig  `yaml:"backup"`

	path string
}

// Default returns the built-in settings bound to path.
func Default(path string) *Config {
	return &Config{
		StoragePath:            ExpandPath(constants.DefaultStorePath),
		BoardKey:               constants.DefaultBoardKey,
		HistoryCapacity:        constants.DefaultHistoryCapacity,
		AutosaveDebounce:       constants.DefaultAutosaveDebounce,
		DefaultRequiredWorkers: constants.DefaultRequiredWorkers,
		Export: ExportConfig{
			OutputDir: ".",
			Sheet:     constants.DefaultExportSheet,
			WorkText:  constants.DefaultWorkText,
		},
		Backup: BackupConfig{
			MaxBackups: constants.MaxBackups,
			Interval:   constants.DefaultBackupEvery,
		},
		path: ExpandPath(path),
	}
}

// Load reads path on top of the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default(path)

	data, err := os.ReadFile(cfg.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", cfg.path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", cfg.path, err)
	}

	cfg.applyDefaults()
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Path returns the file this config was loaded from.
func (c *Config) Path() string { return c.path }

// Dir is the directory holding the config file; logs and the session lock
// live there.
func (c *Config) Dir() string { return filepath.Dir(c.path) }

// LockPath is the session lock file for the configured store.
func (c *Config) LockPath() string {
	return filepath.Join(filepath.Dir(c.StoragePath), constants.LockFileName)
}

// Save writes the config back to its path.
func (c *Config) Save() error {
	if err := c.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", c.path, err)
	}
	return nil
}

// WriteDefault creates a commented config file at path. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	path = ExpandPath(path)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0600)
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.StoragePath) == "" {
		c.StoragePath = constants.DefaultStorePath
	}
	if strings.TrimSpace(c.BoardKey) == "" {
		c.BoardKey = constants.DefaultBoardKey
	}
	if c.HistoryCapacity == 0 {
		c.HistoryCapacity = constants.DefaultHistoryCapacity
	}
	if c.AutosaveDebounce == 0 {
		c.AutosaveDebounce = constants.DefaultAutosaveDebounce
	}
	if c.DefaultRequiredWorkers == 0 {
		c.DefaultRequiredWorkers = constants.DefaultRequiredWorkers
	}
	if c.Export.Sheet == "" {
		c.Export.Sheet = constants.DefaultExportSheet
	}
	if c.Export.WorkText == "" {
		c.Export.WorkText = constants.DefaultWorkText
	}
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = "."
	}
	if c.Backup.MaxBackups == 0 {
		c.Backup.MaxBackups = constants.MaxBackups
	}
}

func (c *Config) normalize() {
	c.StoragePath = ExpandPath(c.StoragePath)
	c.BoardKey = strings.TrimSpace(c.BoardKey)
	c.Export.TemplatePath = ExpandPath(c.Export.TemplatePath)
	c.Export.OutputDir = ExpandPath(c.Export.OutputDir)
	c.Export.Sheet = strings.TrimSpace(c.Export.Sheet)
}

func (c *Config) validate() error {
	if c.HistoryCapacity < 0 {
		return fmt.Errorf("history_capacity must be >= 0")
	}
	if c.AutosaveDebounce < 0 {
		return fmt.Errorf("autosave_debounce must be >= 0")
	}
	if c.DefaultRequiredWorkers < 0 {
		return fmt.Errorf("default_required_workers must be >= 0")
	}
	if c.Backup.MaxBackups < 0 {
		return fmt.Errorf("backup.max_backups must be >= 0")
	}
	if c.Backup.Interval < 0 {
		return fmt.Errorf("backup.interval must be >= 0")
	}
	if c.Export.TemplatePath != "" && !strings.EqualFold(filepath.Ext(c.Export.TemplatePath), constants.ExportFileExtension) {
		return fmt.Errorf("export.template_path must be an %s file", constants.ExportFileExtension)
	}
	return nil
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(p string) string {
	p = strings.TrimSpace(p)
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
