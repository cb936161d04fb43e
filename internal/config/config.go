package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/r9s-ai/room-snippet/internal/version"
	"github.com/r9s-ai/room-snippet/pkg/environment"
)

// Config is the roomsnip.yaml file after defaults and ROOMSNIP_* overrides.
type Config struct {
	// DefaultEnvironment is used when no --environment flag is given.
	DefaultEnvironment string `yaml:"default_environment"`

	// APIKeyVarName overrides every dialect's default API key variable name.
	APIKeyVarName string `yaml:"api_key_var_name"`

	// Highlight is one of auto, always, never.
	Highlight string `yaml:"highlight"`

	HTTP struct {
		TimeoutMs int    `yaml:"timeout_ms"`
		UserAgent string `yaml:"user_agent"`
	} `yaml:"http"`

	// Environments overrides URL patterns by environment tag. Patterns use the
	// {{.room}} placeholder.
	Environments map[string]EnvironmentPatterns `yaml:"environments"`

	FakeBackend struct {
		Listen string `yaml:"listen"`
		APIKey string `yaml:"api_key"`
	} `yaml:"fake_backend"`
}

// EnvironmentPatterns overrides the URL patterns of one environment. Empty
// fields keep the builtin pattern.
type EnvironmentPatterns struct {
	FetchURL   string `yaml:"fetch_url"`
	DisplayURL string `yaml:"display_url"`
}

const (
	HighlightAuto   = "auto"
	HighlightAlways = "always"
	HighlightNever  = "never"
)

// Load reads path. Unlike LoadIfExists a missing file is an error.
func Load(path string) (*Config, error) {
	// #nosec G304 -- path is provided by trusted config/flag.
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return finish(&cfg)
}

// LoadIfExists loads path, falling back to defaults when path is empty or
// does not exist.
func LoadIfExists(path string) (*Config, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return Default()
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default()
		}
		return nil, err
	}
	return Load(p)
}

// Default returns the builtin configuration with env overrides applied.
func Default() (*Config, error) {
	return finish(&Config{})
}

func finish(cfg *Config) (*Config, error) {
	applyDefaults(cfg)
	applyEnvOverrides(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.DefaultEnvironment) == "" {
		cfg.DefaultEnvironment = string(environment.Default)
	}
	if strings.TrimSpace(cfg.Highlight) == "" {
		cfg.Highlight = HighlightNever
	}
	if cfg.HTTP.TimeoutMs == 0 {
		cfg.HTTP.TimeoutMs = 30000
	}
	if strings.TrimSpace(cfg.HTTP.UserAgent) == "" {
		cfg.HTTP.UserAgent = version.UserAgent()
	}
	if cfg.Environments == nil {
		cfg.Environments = map[string]EnvironmentPatterns{}
	}
	cfg.Environments = normalizeEnvironmentKeys(cfg.Environments)
	if strings.TrimSpace(cfg.FakeBackend.Listen) == "" {
		cfg.FakeBackend.Listen = ":3300"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("ROOMSNIP_ENVIRONMENT")); v != "" {
		cfg.DefaultEnvironment = v
	}
	if v := strings.TrimSpace(os.Getenv("ROOMSNIP_API_KEY_VAR_NAME")); v != "" {
		cfg.APIKeyVarName = v
	}
	if v := strings.TrimSpace(os.Getenv("ROOMSNIP_HIGHLIGHT")); v != "" {
		cfg.Highlight = v
	}
	if v := strings.TrimSpace(os.Getenv("ROOMSNIP_TIMEOUT_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTP.TimeoutMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("ROOMSNIP_USER_AGENT")); v != "" {
		cfg.HTTP.UserAgent = v
	}
	if v := strings.TrimSpace(os.Getenv("ROOMSNIP_FAKE_BACKEND_LISTEN")); v != "" {
		cfg.FakeBackend.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv("ROOMSNIP_FAKE_BACKEND_API_KEY")); v != "" {
		cfg.FakeBackend.APIKey = v
	}
	for _, env := range environment.All() {
		name := envVarPrefix(env)
		p := cfg.Environments[string(env)]
		changed := false
		if v := strings.TrimSpace(os.Getenv(name + "_FETCH_URL")); v != "" {
			p.FetchURL = v
			changed = true
		}
		if v := strings.TrimSpace(os.Getenv(name + "_DISPLAY_URL")); v != "" {
			p.DisplayURL = v
			changed = true
		}
		if changed {
			cfg.Environments[string(env)] = p
		}
	}
}

// envVarPrefix maps hosted-meet to ROOMSNIP_HOSTED_MEET.
func envVarPrefix(env environment.Environment) string {
	return "ROOMSNIP_" + strings.ToUpper(strings.ReplaceAll(string(env), "-", "_"))
}

func validate(cfg *Config) error {
	if _, err := environment.Parse(cfg.DefaultEnvironment); err != nil {
		return fmt.Errorf("default_environment: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Highlight)) {
	case HighlightAuto, HighlightAlways, HighlightNever:
		cfg.Highlight = strings.ToLower(strings.TrimSpace(cfg.Highlight))
	default:
		return fmt.Errorf("highlight must be one of auto, always, never (got %q)", cfg.Highlight)
	}
	if cfg.HTTP.TimeoutMs < 0 {
		return errors.New("http.timeout_ms must be non-negative")
	}
	for tag, p := range cfg.Environments {
		if _, err := environment.Parse(tag); err != nil {
			return fmt.Errorf("environments: %w", err)
		}
		for field, v := range map[string]string{"fetch_url": p.FetchURL, "display_url": p.DisplayURL} {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			// Keep this validation lightweight; placeholders are checked on resolve.
			if !strings.Contains(v, "://") {
				return fmt.Errorf("environments.%s.%s must be a URL pattern (e.g. https://host/room/{{.room}})", tag, field)
			}
		}
	}
	return nil
}

// Table returns the builtin environment table with configured patterns
// applied.
func (c *Config) Table() environment.Table {
	table := environment.DefaultTable()
	if c == nil {
		return table
	}
	for tag, p := range c.Environments {
		env, err := environment.Parse(tag)
		if err != nil {
			continue
		}
		table = table.With(env, environment.Pattern{FetchURL: p.FetchURL, DisplayURL: p.DisplayURL})
	}
	return table
}

func normalizeEnvironmentKeys(in map[string]EnvironmentPatterns) map[string]EnvironmentPatterns {
	out := make(map[string]EnvironmentPatterns, len(in))
	for k, v := range in {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" {
			continue
		}
		out[key] = v
	}
	return out
}
