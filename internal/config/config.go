// Package config loads brdtrack settings from defaults, an optional TOML
// file and BRDTRACK_* environment variables. Command-line flags are applied
// last by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultAddr           = "127.0.0.1:5000"
	DefaultDataDir        = "data"
	DefaultDataFile       = "projects.xlsx"
	DefaultBackupDir      = "backups"
	DefaultHistoryDB      = "history.db"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "auto"
	DefaultConfigFile     = "brdtrack.toml"
	DefaultReadTimeoutSec = 30
	DefaultMaxUploadMB    = 32
)

type ServerConfig struct {
	Addr           string   `toml:"addr"`
	CORSOrigins    []string `toml:"cors_origins"`
	ReadTimeoutSec int      `toml:"read_timeout_sec"`
	MaxUploadMB    int      `toml:"max_upload_mb"`
}

// DataConfig locates the dataset workbook, its backups and the history
// journal. Relative BackupDir and HistoryDB are resolved against Dir.
type DataConfig struct {
	Dir       string `toml:"dir"`
	File      string `toml:"file"`
	BackupDir string `toml:"backup_dir"`
	HistoryDB string `toml:"history_db"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // auto, text or json
}

type Config struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Log    LogConfig    `toml:"log"`
}

// Default returns a Config with every field set to its default.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           DefaultAddr,
			CORSOrigins:    []string{"*"},
			ReadTimeoutSec: DefaultReadTimeoutSec,
			MaxUploadMB:    DefaultMaxUploadMB,
		},
		Data: DataConfig{
			Dir:       DefaultDataDir,
			File:      DefaultDataFile,
			BackupDir: DefaultBackupDir,
			HistoryDB: DefaultHistoryDB,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load builds the configuration in priority order:
//  1. Defaults
//  2. TOML file (path argument, else BRDTRACK_CONFIG, else ./brdtrack.toml if present)
//  3. Environment variables
//
// An explicitly named file that does not exist is an error; the implicit
// ./brdtrack.toml is optional.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := true
	if path == "" {
		path = os.Getenv("BRDTRACK_CONFIG")
	}
	if path == "" {
		path = DefaultConfigFile
		explicit = false
	}

	if err := loadConfigFile(&cfg, path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	loadFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadConfigFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("BRDTRACK_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("BRDTRACK_CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("BRDTRACK_READ_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.ReadTimeoutSec = n
		}
	}
	if v := os.Getenv("BRDTRACK_MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.MaxUploadMB = n
		}
	}
	if v := os.Getenv("BRDTRACK_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("BRDTRACK_DATA_FILE"); v != "" {
		cfg.Data.File = v
	}
	if v := os.Getenv("BRDTRACK_BACKUP_DIR"); v != "" {
		cfg.Data.BackupDir = v
	}
	if v, ok := os.LookupEnv("BRDTRACK_HISTORY_DB"); ok {
		// An explicitly empty value disables the journal.
		cfg.Data.HistoryDB = v
	}
	if v := os.Getenv("BRDTRACK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("BRDTRACK_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// Validate checks fields that have no safe fallback.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Data.File) == "" {
		return fmt.Errorf("data.file is required")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "auto", "text", "json":
	default:
		return fmt.Errorf("log.format %q must be auto, text or json", c.Log.Format)
	}
	for _, o := range c.Server.CORSOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("server.cors_origins: %q must be * or an http(s) origin", o)
		}
	}
	return nil
}

// DataFile returns the path of the dataset workbook.
func (c Config) DataFile() string {
	return c.resolve(c.Data.File)
}

// BackupDir returns the directory that holds snapshots.
func (c Config) BackupDir() string {
	return c.resolve(c.Data.BackupDir)
}

// HistoryDBPath returns the journal database path, or "" when disabled.
func (c Config) HistoryDBPath() string {
	if strings.TrimSpace(c.Data.HistoryDB) == "" {
		return ""
	}
	return c.resolve(c.Data.HistoryDB)
}

func (c Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.Data.Dir, p)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
