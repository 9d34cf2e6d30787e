package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ALT-F4-LLC/chatexport/internal/model"
	"github.com/ALT-F4-LLC/chatexport/internal/render"
)

const (
	dbFileName     = "chats.db"
	blobDirName    = "blobs"
	configFileName = "config.yaml"
)

// Settings are the export defaults read from config.yaml. Zero values mean
// "use the built-in default".
type Settings struct {
	SelfContactID   int    `yaml:"self_contact_id"`
	TextPolicy      string `yaml:"text_policy"`
	TimeLayout      string `yaml:"time_layout"`
	ShortTimeLayout string `yaml:"short_time_layout"`
	TimeZone        string `yaml:"time_zone"`
	AdjacentDedup   bool   `yaml:"adjacent_dedup"`
	LogLevel        string `yaml:"log_level"`
	LogFile         string `yaml:"log_file"`
}

// Config holds resolved configuration for the data directory, database and
// export defaults.
type Config struct {
	Dir        string // resolved .chatexport directory path
	DBPath     string // full path to chats.db
	BlobDir    string // directory holding attachment and avatar files
	ConfigPath string // full path to config.yaml (may not exist)
	EnvVarSet  bool   // whether CHATEXPORT_PATH was used
	Settings   Settings
}

// Resolve returns the current configuration. A .env file in the working
// directory is loaded first; then CHATEXPORT_PATH is checked, falling back
// to $PWD/.chatexport. config.yaml inside that directory is optional.
// CHATEXPORT_LOG_LEVEL and CHATEXPORT_LOG_FILE override the file settings.
func Resolve() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var dir string
	var envVarSet bool

	if envPath := os.Getenv("CHATEXPORT_PATH"); envPath != "" {
		dir = envPath
		envVarSet = true
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(cwd, ".chatexport")
	}

	cfg := &Config{
		Dir:        dir,
		DBPath:     filepath.Join(dir, dbFileName),
		BlobDir:    filepath.Join(dir, blobDirName),
		ConfigPath: filepath.Join(dir, configFileName),
		EnvVarSet:  envVarSet,
	}

	settings, err := LoadSettings(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	if v := os.Getenv("CHATEXPORT_LOG_LEVEL"); v != "" {
		settings.LogLevel = v
	}
	if v := os.Getenv("CHATEXPORT_LOG_FILE"); v != "" {
		settings.LogFile = v
	}
	if v := os.Getenv("CHATEXPORT_BLOB_DIR"); v != "" {
		cfg.BlobDir = v
	}
	cfg.Settings = settings

	return cfg, nil
}

// LoadSettings parses a config.yaml file. A missing file yields empty
// settings.
func LoadSettings(path string) (Settings, error) {
	var s Settings

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing %s: %w", path, err)
	}

	if _, err := s.Policy(); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	if _, err := s.Location(); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Exists checks if the data directory and DB file both exist.
// It returns an error for non-existence failures (e.g. permission errors).
func (c *Config) Exists() (bool, error) {
	if _, err := os.Stat(c.Dir); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if _, err := os.Stat(c.DBPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SelfID returns the configured self contact ID or model.ContactIDSelf.
func (s Settings) SelfID() int {
	if s.SelfContactID == 0 {
		return model.ContactIDSelf
	}
	return s.SelfContactID
}

// Policy returns the configured text policy, defaulting to escaping.
func (s Settings) Policy() (render.TextPolicy, error) {
	if s.TextPolicy == "" {
		return render.TextEscape, nil
	}
	return render.ParseTextPolicy(s.TextPolicy)
}

// Location returns the configured time zone, defaulting to UTC.
func (s Settings) Location() (*time.Location, error) {
	if s.TimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time_zone %q: %w", s.TimeZone, err)
	}
	return loc, nil
}

// Times returns the layout-based formatter described by the settings.
func (s Settings) Times() (render.LayoutTimeFormatter, error) {
	loc, err := s.Location()
	if err != nil {
		return render.LayoutTimeFormatter{}, err
	}
	return render.LayoutTimeFormatter{
		FullLayout:  s.TimeLayout,
		ShortLayout: s.ShortTimeLayout,
		Location:    loc,
	}, nil
}

// Level returns the configured log level, defaulting to warn so that
// command output stays clean.
func (s Settings) Level() slog.Level {
	return ParseLogLevel(s.LogLevel, slog.LevelWarn)
}

// ParseLogLevel maps a level name to a slog.Level, returning def for empty
// or unknown names.
func ParseLogLevel(name string, def slog.Level) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return def
	}
}
