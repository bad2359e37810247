// Package config loads taskroute settings from defaults, an optional YAML
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/taskroute/pkg/llm"
	"github.com/spf13/viper"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "taskroute.yaml"

// EnvPrefix prefixes every environment override, e.g. TASKROUTE_SERVER_ADDR.
const EnvPrefix = "TASKROUTE"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all configuration for taskroute.
type Config struct {
	Provider  llm.ProviderConfig `mapstructure:"provider"`
	Server    ServerConfig       `mapstructure:"server"`
	Log       LogConfig          `mapstructure:"log"`
	Cache     CacheConfig        `mapstructure:"cache"`
	Prompts   PromptsConfig      `mapstructure:"prompts"`
	Telemetry TelemetryConfig    `mapstructure:"telemetry"`
	MCP       MCPConfig          `mapstructure:"mcp"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr         string `mapstructure:"addr"`
	MaxInputSize int    `mapstructure:"max_input_size"`
	// MetricsAddr serves /metrics on a separate listener when set.
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CacheConfig selects the response cache.
type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

// RedisConfig holds the Redis connection for the cache.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// PromptsConfig points at an optional prompt override file.
type PromptsConfig struct {
	File  string `mapstructure:"file"`
	Watch bool   `mapstructure:"watch"`
}

// TelemetryConfig holds OTLP trace export settings.
type TelemetryConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	Insecure    bool   `mapstructure:"insecure"`
	ServiceName string `mapstructure:"service_name"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Transport string `mapstructure:"transport"`
	Port      int    `mapstructure:"port"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider.name", llm.ProviderHuggingFace)
	v.SetDefault("provider.model", "")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.temperature", 0.2)
	v.SetDefault("provider.max_tokens", 256)
	v.SetDefault("provider.timeout", 60*time.Second)
	v.SetDefault("provider.bedrock", false)
	v.SetDefault("provider.aws_region", "")

	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.max_input_size", 4096)
	v.SetDefault("server.metrics_addr", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("cache.backend", CacheNone)
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.prefix", "taskroute:cache:")

	v.SetDefault("prompts.file", "")
	v.SetDefault("prompts.watch", false)

	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.insecure", false)
	v.SetDefault("telemetry.service_name", "taskroute")

	v.SetDefault("mcp.transport", TransportStdio)
	v.SetDefault("mcp.port", 8080)
}

// Load reads configuration with precedence (highest to lowest):
//  1. Environment variables (TASKROUTE_*, plus provider credentials)
//  2. The config file (path, or ./taskroute.yaml when path is empty)
//  3. Built-in defaults
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if _, err := os.Stat(DefaultFile); err == nil {
		v.SetConfigFile(DefaultFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", DefaultFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyProviderEnv(&cfg.Provider)
	cfg.Provider.APIKey = os.ExpandEnv(cfg.Provider.APIKey)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyProviderEnv fills credentials from each provider's conventional variables.
func applyProviderEnv(p *llm.ProviderConfig) {
	switch p.Name {
	case llm.ProviderHuggingFace:
		if p.APIKey == "" {
			p.APIKey = os.Getenv("HF_TOKEN")
		}
		if p.Model == "" {
			p.Model = os.Getenv("HF_REPO_ID")
		}
	case llm.ProviderAnthropic:
		if p.APIKey == "" {
			p.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	case llm.ProviderGemini:
		if p.APIKey == "" {
			p.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
}

// Validate rejects unknown enum values and impossible limits.
// Credentials are checked when the provider is built.
func (c *Config) Validate() error {
	if !slices.Contains(llm.Providers, c.Provider.Name) {
		return fmt.Errorf("%w: provider.name %q (want one of %s)", ErrInvalid, c.Provider.Name, strings.Join(llm.Providers, ", "))
	}
	switch c.Cache.Backend {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("%w: cache.backend %q", ErrInvalid, c.Cache.Backend)
	}
	switch c.MCP.Transport {
	case TransportStdio, TransportSSE:
	default:
		return fmt.Errorf("%w: mcp.transport %q", ErrInvalid, c.MCP.Transport)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	if c.Server.MaxInputSize <= 0 {
		return fmt.Errorf("%w: server.max_input_size must be positive", ErrInvalid)
	}
	if c.Provider.MaxTokens <= 0 {
		return fmt.Errorf("%w: provider.max_tokens must be positive", ErrInvalid)
	}
	return nil
}
