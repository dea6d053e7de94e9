package config

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOllama    ProviderType = "ollama"
)

// Config is the top-level labstock configuration, corresponding to .labstock.yml.
type Config struct {
	Provider     ProviderType `yaml:"provider" koanf:"provider"`
	Model        string       `yaml:"model" koanf:"model"`
	DBPath       string       `yaml:"db_path" koanf:"db_path"`
	Port         int          `yaml:"port" koanf:"port"`
	AllowAll     bool         `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	AlertWebhook string       `yaml:"alert_webhook" koanf:"alert_webhook"`
	Actor        string       `yaml:"actor" koanf:"actor"`
}
