package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the resulting
// Config to path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to botrelay! Let's configure your bot.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select bot provider",
		Items: []string{string(ProviderCoze), string(ProviderOpenAI)},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)

	// 2. Provider specific settings.
	switch cfg.Provider {
	case ProviderCoze:
		if cfg.CozeBotID, err = prompt("Coze bot id", "", required); err != nil {
			return nil, fmt.Errorf("bot id: %w", err)
		}
		if cfg.CozeBaseURL, err = prompt("Coze API base URL", DefaultCozeBaseURL, validURL("coze_base_url")); err != nil {
			return nil, fmt.Errorf("base url: %w", err)
		}
		if os.Getenv("COZE_SAT") == "" {
			fmt.Println("\nNote: set COZE_SAT in your environment before running botrelay server.")
		}
	case ProviderOpenAI:
		if cfg.Model, err = prompt("Model", cfg.Model, required); err != nil {
			return nil, fmt.Errorf("model: %w", err)
		}
		if os.Getenv("OPENAI_API_KEY") == "" {
			fmt.Println("\nNote: set OPENAI_API_KEY in your environment before running botrelay server.")
		}
	}

	// 3. Frontend origin for CORS.
	if cfg.FrontendURL, err = prompt("Frontend origin (CORS)", DefaultFrontendURL, validURL("frontend_url")); err != nil {
		return nil, fmt.Errorf("frontend url: %w", err)
	}

	// 4. Port.
	portStr, err := prompt("Port", strconv.Itoa(DefaultPort), validPort)
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func prompt(label, def string, validate promptui.ValidateFunc) (string, error) {
	p := promptui.Prompt{
		Label:    label,
		Default:  def,
		Validate: validate,
	}
	return p.Run()
}

func required(s string) error {
	if s == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

func validURL(key string) promptui.ValidateFunc {
	return func(s string) error {
		return validateURL(key, s)
	}
}

func validPort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}
