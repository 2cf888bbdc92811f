// Package config loads application configuration from defaults, an optional
// config file and environment variables, in increasing priority.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrMissingAPIKey indicates no API key for the chat-completion service was set.
	ErrMissingAPIKey = errors.New("missing API key")
)

type Config struct {
	// Chat-completion service (any OpenAI-compatible endpoint).
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	ChatModel      string `mapstructure:"chat_model"`
	EmbeddingModel string `mapstructure:"embedding_model"`

	// Search backend.
	MilvusAddress string `mapstructure:"milvus_address"`
	Collection    string `mapstructure:"collection"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("chat_model", "openai/gpt-4o-mini")
	v.SetDefault("embedding_model", "openai/text-embedding-3-small")
	v.SetDefault("milvus_address", "172.17.0.1:19530")
	v.SetDefault("collection", "support_tickets")
}

// Load reads the configuration. The API key is only taken from the
// environment (TICKET_RAG_API_KEY or OPENAI_API_KEY), never from the file.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.ticket_rag")

	v.SetEnvPrefix("TICKET_RAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api_key", "TICKET_RAG_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	return &cfg, nil
}
