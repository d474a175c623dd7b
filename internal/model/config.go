package model

import "time"

// Config is the complete runtime configuration. It is built once at process
// start (defaults → config file → environment → flags) and passed by reference
// into every component; nothing below the CLI reads ambient process state.
type Config struct {
	Source      SourceConfig      `yaml:"source" mapstructure:"source"`
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Isolator    IsolatorConfig    `yaml:"isolator" mapstructure:"isolator"`
	Extract     ExtractConfig     `yaml:"extract" mapstructure:"extract"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// SourceConfig describes where contract text files come from.
type SourceConfig struct {
	Dir       string `yaml:"dir" mapstructure:"dir"`               // root of the recursive *.txt search
	BatchSize int    `yaml:"batch_size" mapstructure:"batch_size"` // max documents per run
}

// StoreConfig describes the target Postgres store. The table and its rows are
// owned by an external collaborator; the pipeline only updates existing rows.
type StoreConfig struct {
	DSN     string        `yaml:"dsn" mapstructure:"dsn"`
	Table   string        `yaml:"table" mapstructure:"table"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LLMConfig configures the hosted-model boundary. Any OpenAI-compatible
// endpoint works through BaseURL. An empty APIKey disables the LLM stage for
// the whole run; rule-based extraction still runs.
type LLMConfig struct {
	Model             string        `yaml:"model" mapstructure:"model"`
	APIKey            string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL           string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens         int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	ChunkSize         int           `yaml:"chunk_size" mapstructure:"chunk_size"`
	MaxRetries        int           `yaml:"max_retries" mapstructure:"max_retries"`
	BackoffBase       time.Duration `yaml:"backoff_base" mapstructure:"backoff_base"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
}

// IsolatorConfig holds the block-isolation thresholds. The defaults are the
// reference behavior tuned against the contract corpus.
type IsolatorConfig struct {
	MaxBlock       int `yaml:"max_block" mapstructure:"max_block"`             // hard cap on concatenated output
	FallbackPrefix int `yaml:"fallback_prefix" mapstructure:"fallback_prefix"` // prefix slice when no trigger matches
	MergeGap       int `yaml:"merge_gap" mapstructure:"merge_gap"`             // spans closer than this are merged
}

// ExtractConfig holds the tunable parameters of the rule-based cascade.
type ExtractConfig struct {
	ReplaceOverLen int `yaml:"replace_over_len" mapstructure:"replace_over_len"` // candidates longer than this are low-quality
	TailLines      int `yaml:"tail_lines" mapstructure:"tail_lines"`             // lines scanned by the signature-tail strategy
}

// CacheConfig controls the content-hash result cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ConcurrencyConfig bounds document fan-out. Chunk calls within one document
// are always sequential; only documents run in parallel.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls diagnostics.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Dir:       "data/txt",
			BatchSize: 200,
		},
		Store: StoreConfig{
			Table:   "public.sync_contratos",
			Timeout: 30 * time.Second,
		},
		LLM: LLMConfig{
			Model:             "gpt-4o-mini",
			Timeout:           60 * time.Second,
			MaxTokens:         2048,
			ChunkSize:         15000,
			MaxRetries:        3,
			BackoffBase:       time.Second,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Isolator: IsolatorConfig{
			MaxBlock:       12000,
			FallbackPrefix: 8000,
			MergeGap:       500,
		},
		Extract: ExtractConfig{
			ReplaceOverLen: 180,
			TailLines:      200,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
