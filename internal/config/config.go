package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Conf holds the configuration loaded at startup. Settings fixed for the life
// of the process (port, session secret, logging, store sizing) are read from it.
var Conf *Config

// live is the latest valid configuration, replaced on every reload.
var live atomic.Pointer[Config]

// Current returns the latest configuration, including hot reloads. Request
// handlers read reloadable settings through it. It falls back to Conf when
// nothing has been loaded yet.
func Current() *Config {
	if c := live.Load(); c != nil {
		return c
	}
	return Conf
}

// Config struct is the top-level configuration structure.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Waveform  WaveformConfig  `mapstructure:"waveform"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Workspace WorkspaceConfig `mapstructure:"workspace"`
}

// ServerConfig holds server-related settings.
type ServerConfig struct {
	Port          string `mapstructure:"port"`
	SessionSecret string `mapstructure:"session_secret"`
	AssetsDir     string `mapstructure:"assets_dir"`
	SecureCookies bool   `mapstructure:"secure_cookies"`
}

// LoggingConfig holds settings for the logger.
type LoggingConfig struct {
	Directory  string `mapstructure:"directory"`
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// DashboardConfig points at the seed data.
type DashboardConfig struct {
	Fixtures string `mapstructure:"fixtures"`
}

type WaveformConfig struct {
	DefaultLength int `mapstructure:"default_length"`
	MaxLength     int `mapstructure:"max_length"`
}

// UploadConfig controls the simulated analysis of uploaded files.
type UploadConfig struct {
	ProcessingDelay   time.Duration `mapstructure:"processing_delay"`
	AllowedExtensions []string      `mapstructure:"allowed_extensions"`
	CompletionKey     string        `mapstructure:"completion_key"`
	RateLimit         uint          `mapstructure:"rate_limit"`
	MaxMultipartMB    int64         `mapstructure:"max_multipart_mb"`
}

// WorkspaceConfig bounds the per-browser state kept in memory.
type WorkspaceConfig struct {
	MaxSessions int           `mapstructure:"max_sessions"`
	TTL         time.Duration `mapstructure:"ttl"`
}

// setDefaults sets the default values for the configuration.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "5050")
	v.SetDefault("server.session_secret", "neurowatch-dev-secret-change-me")
	v.SetDefault("server.assets_dir", "assets")
	v.SetDefault("server.secure_cookies", false)

	// Logging defaults
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.max_size", 10)   // 10 MB
	v.SetDefault("logging.max_backups", 3) // Keep 3 backups
	v.SetDefault("logging.max_age", 7)     // 7 days
	v.SetDefault("logging.compress", true) // Compress old logs

	v.SetDefault("dashboard.fixtures", "config/patients.yaml")

	v.SetDefault("waveform.default_length", 50)
	v.SetDefault("waveform.max_length", 2000)

	v.SetDefault("upload.processing_delay", "3s")
	v.SetDefault("upload.allowed_extensions", []string{".csv", ".edf"})
	v.SetDefault("upload.completion_key", "id")
	v.SetDefault("upload.rate_limit", 30) // uploads per minute per client
	v.SetDefault("upload.max_multipart_mb", 50)

	v.SetDefault("workspace.max_sessions", 1000)
	v.SetDefault("workspace.ttl", "24h")
}

// Default returns the configuration built from defaults alone.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		panic("default configuration does not decode: " + err.Error())
	}
	return &c
}

// Load reads the configuration from defaults, config/config.yaml under
// projectRoot and NEUROWATCH_* environment variables, in increasing priority.
func Load(projectRoot string) (*viper.Viper, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// --- File Configuration ---
	v.AddConfigPath(filepath.Join(projectRoot, "config"))
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// --- Environment Variable Binding ---
	v.SetEnvPrefix("NEUROWATCH") // e.g., NEUROWATCH_SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// It's okay if the file doesn't exist; defaults and env vars will be used.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	Conf = &c
	live.Store(&c)
	return v, nil
}

// Watch publishes a new Current configuration whenever the config file
// changes. Waveform lengths and the upload settings of new workspaces follow
// the reload; everything else needs a restart.
func Watch(v *viper.Viper, log *zap.Logger) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info("Configuration file changed, reloading.", zap.String("file", e.Name))
		reload(v, log)
	})
}

func reload(v *viper.Viper, log *zap.Logger) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Error("Error reloading configuration", zap.Error(err))
		return
	}
	if err := c.validate(); err != nil {
		log.Error("Rejected reloaded configuration", zap.Error(err))
		return
	}
	live.Store(&c)
}

func (c *Config) validate() error {
	if c.Waveform.DefaultLength < 0 {
		return fmt.Errorf("waveform.default_length must not be negative")
	}
	if c.Waveform.MaxLength < c.Waveform.DefaultLength {
		return fmt.Errorf("waveform.max_length %d is below default_length %d", c.Waveform.MaxLength, c.Waveform.DefaultLength)
	}
	if c.Upload.ProcessingDelay < 0 {
		return fmt.Errorf("upload.processing_delay must not be negative")
	}
	switch strings.ToLower(c.Upload.CompletionKey) {
	case "", "id", "name":
	default:
		return fmt.Errorf("upload.completion_key must be id or name, got %q", c.Upload.CompletionKey)
	}
	if len(c.Upload.AllowedExtensions) == 0 {
		return fmt.Errorf("upload.allowed_extensions must list at least one extension")
	}
	return nil
}
