// ABOUTME: Configuration loader for the academia console
// ABOUTME: Reads ACADEMIA_* environment variables, an optional .env file and bound CLI flags via viper

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/markalston/academia-console/internal/apiclient"
)

// EnvPrefix namespaces every environment variable, e.g. ACADEMIA_API_URL.
const EnvPrefix = "ACADEMIA"

// Keys.
const (
	KeyAPIURL       = "api_url"
	KeyTimeout      = "timeout"
	KeyDataDir      = "data_dir"
	KeyLogLevel     = "log_level"
	KeyLogFormat    = "log_format"
	KeyAllProxy     = "all_proxy"
	KeyRollbarToken = "rollbar_token"
	KeyEnvironment  = "environment"
)

const (
	DefaultAPIURL  = "http://localhost:8080"
	DefaultTimeout = 30 * time.Second
	MinTimeout     = time.Second
	MaxTimeout     = 10 * time.Minute

	sessionFile = "session.db"
)

type Config struct {
	// API
	APIURL   string
	Timeout  time.Duration
	AllProxy string // ssh+socks5://user@jumpbox:22?private-key=/path

	// Local state
	DataDir string

	// Logging
	LogLevel     string // debug, info, warn, error (default: info)
	LogFormat    string // text, json (default: text)
	RollbarToken string // optional; error logs are reported when set
	Environment  string
}

// SessionPath is the bbolt file holding the persisted session.
func (c *Config) SessionPath() string {
	return filepath.Join(c.DataDir, sessionFile)
}

// RollbarEnabled reports whether error reporting is configured.
func (c *Config) RollbarEnabled() bool {
	return c.RollbarToken != ""
}

// New returns a viper instance with defaults and environment binding.
// Flags bound later with BindPFlag take precedence over the environment.
func New() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault(KeyAPIURL, DefaultAPIURL)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyDataDir, defaultDataDir())
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyAllProxy, "")
	v.SetDefault(KeyRollbarToken, "")
	v.SetDefault(KeyEnvironment, "development")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads path into the process environment when it exists.
// Variables already set are not overridden.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: loading %s: %w", path, err)
	}
	return nil
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		APIURL:       ensureScheme(strings.TrimRight(strings.TrimSpace(v.GetString(KeyAPIURL)), "/")),
		Timeout:      v.GetDuration(KeyTimeout),
		AllProxy:     v.GetString(KeyAllProxy),
		DataDir:      v.GetString(KeyDataDir),
		LogLevel:     strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:    strings.ToLower(v.GetString(KeyLogFormat)),
		RollbarToken: v.GetString(KeyRollbarToken),
		Environment:  v.GetString(KeyEnvironment),
	}

	if cfg.APIURL == "" {
		return nil, fmt.Errorf("%s_API_URL is required", EnvPrefix)
	}
	if cfg.Timeout < MinTimeout || cfg.Timeout > MaxTimeout {
		return nil, fmt.Errorf("%s_TIMEOUT must be between %s and %s, got %s", EnvPrefix, MinTimeout, MaxTimeout, cfg.Timeout)
	}
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("%s_DATA_DIR is required", EnvPrefix)
	}
	if cfg.AllProxy != "" {
		if err := apiclient.ValidateAllProxy(cfg.AllProxy); err != nil {
			return nil, fmt.Errorf("%s_ALL_PROXY: %w", EnvPrefix, err)
		}
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return nil, fmt.Errorf("%s_LOG_LEVEL must be one of debug, info, warn, error, got %q", EnvPrefix, cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("%s_LOG_FORMAT must be text or json, got %q", EnvPrefix, cfg.LogFormat)
	}

	return cfg, nil
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "academia")
	}
	return ".academia"
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
