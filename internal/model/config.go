package model

import "time"

// Config holds the complete chaguan configuration
type Config struct {
	API         APIConfig         `yaml:"api"`
	Cache       CacheConfig       `yaml:"cache"`
	Detector    DetectorConfig    `yaml:"detector"`
	HTTP        HTTPConfig        `yaml:"http"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	LLM         LLMConfig         `yaml:"llm"`
}

// APIConfig configures the remote verification service
type APIConfig struct {
	BaseURL       string        `yaml:"base_url"`
	Timeout       time.Duration `yaml:"timeout"`
	HealthTimeout time.Duration `yaml:"health_timeout"`
}

// CacheConfig configures the verification cache
type CacheConfig struct {
	Backend         string        `yaml:"backend"` // "memory" or "disk"
	Dir             string        `yaml:"dir"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
	HistoryPath     string        `yaml:"history_path"`
}

// DetectorConfig configures claim detection thresholds
type DetectorConfig struct {
	MinLength int `yaml:"min_length"` // Minimum claim length in runes
	MaxLength int `yaml:"max_length"` // Maximum claim length in runes
}

// HTTPConfig configures outbound HTTP behavior
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy"`
}

// ConcurrencyConfig bounds parallel work
type ConcurrencyConfig struct {
	VerifyWorkers int `yaml:"verify_workers"` // Concurrent claim verifications per page
	ScanWorkers   int `yaml:"scan_workers"`   // Concurrent page scans in batch mode
}

// RateLimitConfig throttles calls to the verification service
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// LLMConfig configures the optional LLM verification provider
type LLMConfig struct {
	Provider  string        `yaml:"provider"` // "openai", "ollama", or "" (disabled)
	Model     string        `yaml:"model"`
	APIKey    string        `yaml:"api_key"`
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxTokens int           `yaml:"max_tokens"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:       "http://localhost:8000/api/v1",
			Timeout:       30 * time.Second,
			HealthTimeout: 5 * time.Second,
		},
		Cache: CacheConfig{
			Backend:         "disk",
			Dir:             "", // Resolved to ~/.chaguan/cache at startup
			TTL:             7 * 24 * time.Hour,
			CleanupInterval: time.Hour,
			HistoryPath:     "", // Resolved to ~/.chaguan/history.jsonl at startup
		},
		Detector: DetectorConfig{
			MinLength: 20,
			MaxLength: 500,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Chaguan/0.1 (+https://github.com/chaguan/chaguan)",
			MaxBodyBytes: 2_000_000,
		},
		Concurrency: ConcurrencyConfig{
			VerifyWorkers: 5,
			ScanWorkers:   3,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			Burst:             5,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30 * time.Second,
			MaxTokens: 800,
		},
	}
}
