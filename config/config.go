// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds runtime settings for the recommender and loads them
// from defaults, an optional YAML file and COURSEMATCH_ environment variables.
package config

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/poiesic/coursematch/vectorspace"
)

// Config is the complete runtime configuration.
type Config struct {
	DB      DBConfig      `koanf:"db"`
	Search  SearchConfig  `koanf:"search"`
	Index   IndexConfig   `koanf:"index"`
	History HistoryConfig `koanf:"history"`
	Log     LogConfig     `koanf:"log"`
}

// DBConfig locates the snapshot database.
type DBConfig struct {
	// Path is the BadgerDB directory.
	Path string `koanf:"path" validate:"required"`
}

// SearchConfig holds query defaults.
type SearchConfig struct {
	// TopK is the default number of recommendations.
	// Default: 5
	TopK int `koanf:"top_k" validate:"gte=1,lte=100"`

	// MinRating is the default minimum rating filter.
	MinRating float64 `koanf:"min_rating" validate:"gte=0,lte=5"`

	// Explain attaches relevance and context sentences to results.
	Explain bool `koanf:"explain"`
}

// IndexConfig controls snapshot builds.
type IndexConfig struct {
	BatchSize int `koanf:"batch_size" validate:"gte=1"`

	// PoolSize is the number of vectorization workers. 0 means one per CPU.
	PoolSize int `koanf:"pool_size" validate:"gte=1"`

	MaxRetries int           `koanf:"max_retries" validate:"gte=0"`
	RetryDelay time.Duration `koanf:"retry_delay" validate:"gt=0"`

	// ReportInterval reports progress every N items. 0 reports only when the build finishes.
	ReportInterval int `koanf:"report_interval" validate:"gte=0"`

	StopWords      []string `koanf:"stop_words"`
	MinTokenLength int      `koanf:"min_token_length" validate:"gte=1"`
}

// HistoryConfig controls query history listing.
type HistoryConfig struct {
	// Limit is the default number of entries shown.
	Limit int `koanf:"limit" validate:"gte=1"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithDBPath sets the database directory.
func WithDBPath(path string) ConfigOption {
	return func(c *Config) {
		c.DB.Path = path
	}
}

// WithTopK sets the default number of recommendations.
func WithTopK(k int) ConfigOption {
	return func(c *Config) {
		c.Search.TopK = k
	}
}

// WithMinRating sets the default minimum rating filter.
func WithMinRating(r float64) ConfigOption {
	return func(c *Config) {
		c.Search.MinRating = r
	}
}

// WithBatchSize sets the snapshot write batch size.
func WithBatchSize(n int) ConfigOption {
	return func(c *Config) {
		c.Index.BatchSize = n
	}
}

// WithPoolSize sets the number of vectorization workers.
func WithPoolSize(n int) ConfigOption {
	return func(c *Config) {
		c.Index.PoolSize = n
	}
}

// WithStopWords replaces the stop word list used when fitting.
func WithStopWords(words []string) ConfigOption {
	return func(c *Config) {
		c.Index.StopWords = words
	}
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) ConfigOption {
	return func(c *Config) {
		c.Log.Level = level
	}
}

// DefaultConfig returns a Config with defaults suitable for a local catalog.
func DefaultConfig() *Config {
	return &Config{
		DB: DBConfig{
			Path: "coursematch.db",
		},
		Search: SearchConfig{
			TopK: 5,
		},
		Index: IndexConfig{
			BatchSize:      100,
			PoolSize:       runtime.NumCPU(),
			MaxRetries:     3,
			RetryDelay:     1 * time.Second,
			ReportInterval: 100,
			StopWords:      append([]string(nil), vectorspace.DefaultStopWords...),
			MinTokenLength: vectorspace.DefaultMinTokenLength,
		},
		History: HistoryConfig{
			Limit: 20,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithDBPath("/var/lib/coursematch"),
//	    WithTopK(10),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize puts the configuration in canonical form.
func (c *Config) Normalize() {
	c.DB.Path = strings.TrimSpace(c.DB.Path)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "warning" {
		c.Log.Level = "warn"
	}
	if c.Index.PoolSize == 0 {
		c.Index.PoolSize = runtime.NumCPU()
	}

	words := make([]string, 0, len(c.Index.StopWords))
	seen := make(map[string]bool, len(c.Index.StopWords))
	for _, w := range c.Index.StopWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" && !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}
	c.Index.StopWords = words
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration first.
func (c *Config) Validate() error {
	c.Normalize()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// SlogLevel maps the configured level to a slog.Level.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
