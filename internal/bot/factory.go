package bot

import (
	"fmt"

	"github.com/ziadkadry99/botrelay/internal/config"
)

// NewProvider creates the provider selected by cfg. cfg is expected to have
// passed Validate.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderCoze:
		return NewCozeProvider(cfg.CozeBaseURL, cfg.CozeToken, cfg.PollInterval), nil
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", cfg.Provider)
	}
}
