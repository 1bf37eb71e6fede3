package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "BOTRELAY_"

// legacyEnv maps the environment variable names the relay has always read
// onto config keys. BOTRELAY_* variables take precedence over these.
var legacyEnv = map[string]string{
	"COZE_SAT":       "coze_token",
	"FRONTEND_URL":   "frontend_url",
	"OPENAI_API_KEY": "openai_api_key",
}

// Load reads configuration from the given YAML file, then overlays the
// legacy environment variables and finally BOTRELAY_* overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return legacyEnv[key], value
	}), nil); err != nil {
		return nil, fmt.Errorf("loading legacy env: %w", err)
	}

	// Overlay environment variables: BOTRELAY_COZE_BOT_ID -> coze_bot_id, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path. Secrets are
// written too, so the file is created owner-readable only.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

// Validate checks that the configuration is complete enough to serve
// requests. It is called at startup so a missing token or bot id fails fast.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderCoze:
		if c.CozeToken == "" {
			return fmt.Errorf("coze_token is required (set COZE_SAT or %sCOZE_TOKEN)", EnvPrefix)
		}
		if c.CozeBotID == "" {
			return fmt.Errorf("coze_bot_id is required (set %sCOZE_BOT_ID)", EnvPrefix)
		}
		if err := validateURL("coze_base_url", c.CozeBaseURL); err != nil {
			return err
		}
		if c.PollInterval <= 0 {
			return fmt.Errorf("poll_interval must be positive")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("openai_api_key is required (set OPENAI_API_KEY)")
		}
		if c.Model == "" {
			return fmt.Errorf("model is required for provider openai")
		}
		if c.OpenAIBaseURL != "" {
			if err := validateURL("openai_base_url", c.OpenAIBaseURL); err != nil {
				return err
			}
		}
	case "":
		return fmt.Errorf("provider is required")
	default:
		return fmt.Errorf("invalid provider %q: must be one of coze, openai", c.Provider)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	if c.AuditRetention < 0 {
		return fmt.Errorf("audit_retention must not be negative")
	}
	if c.FrontendURL == "" {
		return fmt.Errorf("frontend_url is required")
	}
	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.LogFormat != "" && c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("invalid log_format %q: must be json or text", c.LogFormat)
	}
	return nil
}

func validateURL(key, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", key)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid %s %q", key, raw)
	}
	return nil
}

// MaskSecret shortens a credential for log output, keeping the first and
// last five characters.
func MaskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 10 {
		return strings.Repeat("*", len(s))
	}
	return s[:5] + "..." + s[len(s)-5:]
}
