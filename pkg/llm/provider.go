package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/taskroute/pkg/adapters/anthropic"
	"github.com/aretw0/taskroute/pkg/adapters/gemini"
	"github.com/aretw0/taskroute/pkg/adapters/huggingface"
	"github.com/aretw0/taskroute/pkg/ports"
)

// Provider names.
const (
	ProviderHuggingFace = "huggingface"
	ProviderAnthropic   = "anthropic"
	ProviderGemini      = "gemini"
)

// ErrUnknownProvider is returned for an unsupported provider name.
var ErrUnknownProvider = errors.New("unknown provider")

// ProviderConfig selects and configures the text-generation backend.
type ProviderConfig struct {
	Name        string        `mapstructure:"name"`
	Model       string        `mapstructure:"model"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Bedrock     bool          `mapstructure:"bedrock"`
	AWSRegion   string        `mapstructure:"aws_region"`
}

// Providers lists the supported provider names.
var Providers = []string{ProviderHuggingFace, ProviderAnthropic, ProviderGemini}

// NewGenerator builds the configured backend.
// Missing credentials are reported here, at startup, not per request.
func NewGenerator(ctx context.Context, cfg ProviderConfig) (ports.Generator, error) {
	var (
		gen ports.Generator
		err error
	)
	switch cfg.Name {
	case ProviderHuggingFace, "":
		gen, err = newHuggingFace(cfg)
	case ProviderAnthropic:
		gen, err = newAnthropic(ctx, cfg)
	case ProviderGemini:
		gen, err = newGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s provider: %w", cfg.Name, err)
	}
	return gen, nil
}

func newHuggingFace(cfg ProviderConfig) (*huggingface.Client, error) {
	return huggingface.New(huggingface.Config{
		Token:       cfg.APIKey,
		Model:       cfg.Model,
		BaseURL:     cfg.BaseURL,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.Timeout,
	})
}

func newAnthropic(ctx context.Context, cfg ProviderConfig) (*anthropic.Client, error) {
	return anthropic.New(ctx, anthropic.Config{
		Model:         cfg.Model,
		APIKey:        cfg.APIKey,
		BaseURL:       cfg.BaseURL,
		Temperature:   cfg.Temperature,
		MaxTokens:     int64(cfg.MaxTokens),
		UseAWSBedrock: cfg.Bedrock,
		AWSRegion:     cfg.AWSRegion,
	})
}

func newGemini(ctx context.Context, cfg ProviderConfig) (*gemini.Client, error) {
	return gemini.New(ctx, gemini.Config{
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		BaseURL:     cfg.BaseURL,
		Temperature: float32(cfg.Temperature),
		MaxTokens:   int32(cfg.MaxTokens),
	})
}
