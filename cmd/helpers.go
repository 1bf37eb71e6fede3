package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ziadkadry99/botrelay/internal/bot"
	"github.com/ziadkadry99/botrelay/internal/config"
	"github.com/ziadkadry99/botrelay/internal/logging"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `botrelay init` to create a config file", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w\nRun `botrelay init` or set the environment variables", err)
	}
	return cfg, nil
}

// newLogger builds the process logger from cfg and installs it as the
// slog default.
func newLogger(cfg *config.Config) *slog.Logger {
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	return logger
}

// botID returns the identifier sent with every question.
func botID(cfg *config.Config) string {
	if cfg.Provider == config.ProviderOpenAI {
		return cfg.Model
	}
	return cfg.CozeBotID
}

// createAdapterFromConfig creates the bot adapter for the configured provider.
func createAdapterFromConfig(cfg *config.Config, logger *slog.Logger) (*bot.Adapter, error) {
	provider, err := bot.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}
	return bot.NewAdapter(provider, botID(cfg), bot.WithLogger(logger)), nil
}

// providerCredential returns the masked credential of the configured provider.
func providerCredential(cfg *config.Config) string {
	if cfg.Provider == config.ProviderOpenAI {
		return config.MaskSecret(cfg.OpenAIAPIKey)
	}
	return config.MaskSecret(cfg.CozeToken)
}

// providerBaseURL returns the API base the configured provider talks to.
func providerBaseURL(cfg *config.Config) string {
	if cfg.Provider == config.ProviderOpenAI {
		if cfg.OpenAIBaseURL == "" {
			return "https://api.openai.com/v1"
		}
		return cfg.OpenAIBaseURL
	}
	return cfg.CozeBaseURL
}
