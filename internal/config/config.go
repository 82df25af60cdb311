package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Strategy names accepted by CLASSIFIER_STRATEGY.
const (
	StrategyLexicon = "lexicon"
	StrategyArk     = "ark"
)

// Config aggregates every setting the service needs.
type Config struct {
	Server     ServerConfig
	Classifier ClassifierConfig
	AI         AIConfig
	Store      StoreConfig
	Composer   ComposerConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	classifier, err := loadClassifierConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:     server,
		Classifier: classifier,
		AI:         ai,
		Store:      StoreConfig{Path: getEnvOrDefault("MINDMATE_DB", "mindmate.db")},
		Composer:   loadComposerConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// ClassifierConfig selects the classification strategy for the process
// lifetime and bounds the per-turn call.
type ClassifierConfig struct {
	Strategy string
	Timeout  time.Duration
}

func loadClassifierConfig() (ClassifierConfig, error) {
	strategy := strings.ToLower(getEnvOrDefault("CLASSIFIER_STRATEGY", StrategyLexicon))
	switch strategy {
	case StrategyLexicon, StrategyArk:
	default:
		return ClassifierConfig{}, fmt.Errorf("invalid CLASSIFIER_STRATEGY value %q: want %q or %q", strategy, StrategyLexicon, StrategyArk)
	}

	timeoutSeconds := 10
	if override, err := parseOptionalIntEnv("CLASSIFIER_TIMEOUT"); err != nil {
		return ClassifierConfig{}, err
	} else if override != nil {
		if *override < 1 {
			timeoutSeconds = 1
		} else {
			timeoutSeconds = *override
		}
	}

	return ClassifierConfig{
		Strategy: strategy,
		Timeout:  time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// AIConfig carries the Ark model credentials for the external classifier
// strategy.
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled reports whether the required credentials were provided.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel creates a model instance from the configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials missing: provide ARK_API_KEY + Model, or AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("Model")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

// StoreConfig locates the chat log database.
type StoreConfig struct {
	Path string
}

// ComposerConfig holds the topical trigger words for contextual remarks.
type ComposerConfig struct {
	TriggerWords []string
}

func loadComposerConfig() ComposerConfig {
	raw := getEnvOrDefault("COMPOSER_TRIGGER_WORDS", "exam")
	var words []string
	for _, part := range strings.Split(raw, ",") {
		if word := strings.TrimSpace(part); word != "" {
			words = append(words, word)
		}
	}
	return ComposerConfig{TriggerWords: words}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
