package config

// ProviderType identifies a completion or embedding provider.
type ProviderType string

const (
	ProviderOpenRouter ProviderType = "openrouter"
	ProviderOpenAI     ProviderType = "openai"
	ProviderOllama     ProviderType = "ollama"
)

// Config is the top-level filmrehberi configuration, corresponding to
// .filmrehberi.yml.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`
	Temperature       float64      `yaml:"temperature" koanf:"temperature"`
	TopK              int          `yaml:"top_k" koanf:"top_k"`
	DataDir           string       `yaml:"data_dir" koanf:"data_dir"`
	DatasetPath       string       `yaml:"dataset_path" koanf:"dataset_path"`
	RequestsPerMinute int          `yaml:"requests_per_minute" koanf:"requests_per_minute"`
	Server            ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}
