package config

import "time"

// ProviderType identifies the conversational-AI backend the relay talks to.
type ProviderType string

const (
	ProviderCoze   ProviderType = "coze"
	ProviderOpenAI ProviderType = "openai"
)

// Config is the top-level botrelay configuration, corresponding to .botrelay.yml.
type Config struct {
	Provider       ProviderType  `yaml:"provider" koanf:"provider"`
	CozeToken      string        `yaml:"coze_token,omitempty" koanf:"coze_token"`
	CozeBotID      string        `yaml:"coze_bot_id" koanf:"coze_bot_id"`
	CozeBaseURL    string        `yaml:"coze_base_url" koanf:"coze_base_url"`
	PollInterval   time.Duration `yaml:"poll_interval" koanf:"poll_interval"`
	OpenAIAPIKey   string        `yaml:"openai_api_key,omitempty" koanf:"openai_api_key"`
	OpenAIBaseURL  string        `yaml:"openai_base_url,omitempty" koanf:"openai_base_url"`
	Model          string        `yaml:"model,omitempty" koanf:"model"`
	FrontendURL    string        `yaml:"frontend_url" koanf:"frontend_url"`
	Port           int           `yaml:"port" koanf:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
	StaticDir      string        `yaml:"static_dir,omitempty" koanf:"static_dir"`
	AuditDB        string        `yaml:"audit_db,omitempty" koanf:"audit_db"`
	AuditRetention time.Duration `yaml:"audit_retention,omitempty" koanf:"audit_retention"`
	LogLevel       string        `yaml:"log_level" koanf:"log_level"`
	LogFormat      string        `yaml:"log_format" koanf:"log_format"`
}
