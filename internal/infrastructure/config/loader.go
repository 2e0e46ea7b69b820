package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/serpkit-go/assets"
	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/ports"
)

const envPrefix = "serpkit"

// FileLoader loads YAML configuration from ~/.serpkit/config.yaml
// (overridable via SERPKIT_CONFIG). Credentials may additionally come
// from the environment or a .env file: SERPKIT_API_LOGIN and
// SERPKIT_API_PASSWORD take precedence over the file.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	var cfg domain.Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, err
		}
	case errors.Is(err, fs.ErrNotExist):
		cfg = defaultConfig()
		if err := writeDefault(path, cfg); err != nil {
			return domain.Config{}, err
		}
	default:
		return domain.Config{}, err
	}

	cfg = hydrateDefaults(cfg)
	if err := applyEnvOverrides(&cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *domain.Config) error {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	var creds domain.Credentials
	if err := envconfig.Process(envPrefix, &creds); err != nil {
		return err
	}
	if creds.APILogin != "" {
		cfg.Credentials.APILogin = creds.APILogin
	}
	if creds.APIPassword != "" {
		cfg.Credentials.APIPassword = creds.APIPassword
	}
	return nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("SERPKIT_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".serpkit", "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func writeDefault(path string, cfg domain.Config) error {
	// The embedded template keeps the explanatory comments; fall back
	// to plain marshalling if it ever drifts out of shape.
	if len(assets.DefaultConfigYAML) > 0 {
		var check domain.Config
		if yaml.Unmarshal(assets.DefaultConfigYAML, &check) == nil {
			return os.WriteFile(path, assets.DefaultConfigYAML, 0o600)
		}
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

// Path reports where the loader reads from and writes to.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

// Save validates and persists the configuration.
func (l *FileLoader) Save(cfg domain.Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

// Reset overwrites the config file with the defaults and returns them.
func (l *FileLoader) Reset() (domain.Config, error) {
	cfg := defaultConfig()
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}
	if err := writeDefault(path, cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// DefaultConfig exposes the built-in defaults for diffing.
func DefaultConfig() domain.Config {
	return defaultConfig()
}

// Validate rejects configurations that would fail every run.
func Validate(cfg domain.Config) error {
	if cfg.Defaults.PAADepth < 1 {
		return domain.NewConfigError("defaults.paa_depth", "must be >= 1")
	}
	if cfg.Defaults.MaxQuestions < 1 {
		return domain.NewConfigError("defaults.max_questions", "must be >= 1")
	}
	if cfg.Defaults.MaxRequests < 1 {
		return domain.NewConfigError("defaults.max_requests", "must be >= 1")
	}
	if cfg.Defaults.Concurrency < 1 {
		return domain.NewConfigError("defaults.concurrency", "must be >= 1")
	}
	if cfg.Defaults.Country != "" {
		if _, err := domain.LocationCodeForCountry(cfg.Defaults.Country); err != nil {
			return err
		}
	}
	if cfg.RateLimit.RequestsPerMinute < 1 {
		return domain.NewConfigError("rate_limit.requests_per_minute", "must be >= 1")
	}
	return nil
}

func defaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Defaults: domain.Defaults{
			Language:       "en",
			Country:        "US",
			PAADepth:       1,
			MaxQuestions:   20,
			MaxRequests:    15,
			TimeoutSeconds: 300,
			Concurrency:    1,
		},
		History: domain.HistorySettings{
			Enabled:       true,
			RetentionDays: 90,
		},
		RateLimit: domain.RateSettings{
			RequestsPerMinute: 30,
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	def := defaultConfig()
	if cfg.Defaults.Language == "" {
		cfg.Defaults.Language = def.Defaults.Language
	}
	if cfg.Defaults.Country == "" {
		cfg.Defaults.Country = def.Defaults.Country
	}
	if cfg.Defaults.PAADepth == 0 {
		cfg.Defaults.PAADepth = def.Defaults.PAADepth
	}
	if cfg.Defaults.MaxQuestions == 0 {
		cfg.Defaults.MaxQuestions = def.Defaults.MaxQuestions
	}
	if cfg.Defaults.MaxRequests == 0 {
		cfg.Defaults.MaxRequests = def.Defaults.MaxRequests
	}
	if cfg.Defaults.TimeoutSeconds == 0 {
		cfg.Defaults.TimeoutSeconds = def.Defaults.TimeoutSeconds
	}
	if cfg.Defaults.Concurrency == 0 {
		cfg.Defaults.Concurrency = def.Defaults.Concurrency
	}
	if cfg.RateLimit.RequestsPerMinute == 0 {
		cfg.RateLimit.RequestsPerMinute = def.RateLimit.RequestsPerMinute
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
