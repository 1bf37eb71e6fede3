package config

import "time"

const (
	DefaultCozeBaseURL = "https://api.coze.cn"
	DefaultFrontendURL = "http://localhost:3000"
	DefaultPort        = 3000
)

// DefaultConfig returns a Config with sensible defaults. The provider
// credentials and bot id have no defaults and must be supplied.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderCoze,
		CozeBaseURL:    DefaultCozeBaseURL,
		PollInterval:   500 * time.Millisecond,
		Model:          "gpt-4o-mini",
		FrontendURL:    DefaultFrontendURL,
		Port:           DefaultPort,
		RequestTimeout: 60 * time.Second,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}
