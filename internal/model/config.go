package model

import "time"

// Config holds all Lexis settings. Field tags serve both the YAML config
// file and viper unmarshalling.
type Config struct {
	Recognition    RecognitionConfig    `yaml:"recognition" mapstructure:"recognition"`
	Classification ClassificationConfig `yaml:"classification" mapstructure:"classification"`
	LLM            LLMConfig            `yaml:"llm" mapstructure:"llm"`
	NER            NERConfig            `yaml:"ner" mapstructure:"ner"`
	Syntax         SyntaxConfig         `yaml:"syntax" mapstructure:"syntax"`
	Cache          CacheConfig          `yaml:"cache" mapstructure:"cache"`
	RateLimiting   RateLimitConfig      `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	HTTP           HTTPConfig           `yaml:"http" mapstructure:"http"`
	Concurrency    ConcurrencyConfig    `yaml:"concurrency" mapstructure:"concurrency"`
	Output         OutputConfig         `yaml:"output" mapstructure:"output"`
}

// RecognitionConfig controls chunked entity recognition
type RecognitionConfig struct {
	ChunkLength int `yaml:"chunk_length" mapstructure:"chunk_length"` // Bytes per model window
	ChunkStride int `yaml:"chunk_stride" mapstructure:"chunk_stride"` // Shorter than ChunkLength; otherwise 4/5 of it
}

// ClassificationConfig controls the sentence cascade
type ClassificationConfig struct {
	ZeroShotThreshold float64 `yaml:"zero_shot_threshold" mapstructure:"zero_shot_threshold"`
}

// LLMConfig configures the zero-shot and clause oracles
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, or empty
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"` // Never written to disk
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// NERConfig toggles the local prose token classifier
type NERConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// SyntaxConfig points at a dependency-parse service
type SyntaxConfig struct {
	URL     string        `yaml:"url,omitempty" mapstructure:"url"` // Empty disables syntactic analysis
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// CacheConfig controls oracle response caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// RateLimitConfig bounds calls per oracle
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// HTTPConfig is used when the document source is a URL
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// ConcurrencyConfig sizes the worker pools
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	Color         bool `yaml:"color" mapstructure:"color"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Recognition: RecognitionConfig{
			ChunkLength: 512,
			ChunkStride: 400,
		},
		Classification: ClassificationConfig{
			ZeroShotThreshold: 0.70,
		},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default
			Timeout:   30,
			MaxTokens: 300,
		},
		NER: NERConfig{
			Enabled: true,
		},
		Syntax: SyntaxConfig{
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".lexis-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 5,
			BurstSize:         5,
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Lexis/0.1 (+https://github.com/ppiankov/lexis)",
			MaxBodyBytes:  5_000_000,
			RespectRobots: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Color:         true,
			IncludeFooter: true,
		},
	}
}
