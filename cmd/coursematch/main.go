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

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/coursematch/config"
	"github.com/urfave/cli/v2"
)

const (
	configMetadataKey = "config"
	loggerMetadataKey = "logger"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "coursematch",
		Usage: "Recommend courses from a catalog for free-text learning goals",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				EnvVars: []string{config.PathEnvVar},
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "index",
				Usage:     "Build the catalog snapshot from a CSV, TSV or JSONL file",
				ArgsUsage: "CATALOG",
				Action:    indexCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of items to write in each batch",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of vectorization workers",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N items",
					},
				},
			},
			{
				Name:      "query",
				Usage:     "Recommend courses for a learning goal",
				ArgsUsage: "TEXT...",
				Action:    queryCommand,
				Flags:     queryFlags(),
			},
			{
				Name:   "history",
				Usage:  "Show recent queries",
				Action: historyCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Number of entries to show",
					},
					&cli.BoolFlag{
						Name:  "clear",
						Usage: "Remove all recorded queries",
					},
				},
			},
			{
				Name:   "export-history",
				Usage:  "Export the query history as CSV",
				Action: exportHistoryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output file (default stdout)",
					},
				},
			},
			{
				Name:   "feedback",
				Usage:  "Record whether the last recommendations were helpful",
				Action: feedbackCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "helpful",
						Usage: "Recommendations were helpful",
					},
					&cli.BoolFlag{
						Name:  "not-helpful",
						Usage: "Recommendations were not helpful",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Show catalog, query and feedback statistics",
				Action: statsCommand,
			},
			{
				Name:   "topics",
				Usage:  "List the topics and difficulty levels in the catalog",
				Action: topicsCommand,
			},
			{
				Name:   "shell",
				Usage:  "Answer queries interactively from standard input",
				Action: shellCommand,
				Flags:  queryFlags(),
			},
		},
	}
}

func queryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "top-k",
			Aliases: []string{"k"},
			Usage:   "Number of recommendations",
			Action: func(_ *cli.Context, k int) error {
				if k < 1 {
					return fmt.Errorf("top-k must be at least 1, got %d", k)
				}
				return nil
			},
		},
		&cli.StringSliceFlag{
			Name:  "difficulty",
			Usage: "Only recommend courses at this difficulty (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "topic",
			Usage: "Only recommend courses in this topic (repeatable)",
		},
		&cli.Float64Flag{
			Name:  "min-rating",
			Usage: "Only recommend courses rated at least this high",
			Action: func(_ *cli.Context, r float64) error {
				if r < 0 || r > 5 {
					return fmt.Errorf("min-rating must be between 0 and 5, got %.1f", r)
				}
				return nil
			},
		},
		&cli.BoolFlag{
			Name:  "explain",
			Usage: "Explain each recommendation",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Print results as JSON",
		},
	}
}

// setup loads the configuration, applies global flag overrides and
// configures logging.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if c.IsSet("db") {
		cfg.DB.Path = c.String("db")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		levelStr := strings.ToLower(c.String("log-level"))
		if c.IsSet("log-level") && !validLevel(levelStr) {
			return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
		}
		return err
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[configMetadataKey] = cfg
	c.App.Metadata[loggerMetadataKey] = logger
	return nil
}

func validLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

func configFrom(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configMetadataKey].(*config.Config); ok {
		return cfg
	}
	return config.DefaultConfig()
}

func loggerFrom(c *cli.Context) *slog.Logger {
	if logger, ok := c.App.Metadata[loggerMetadataKey].(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
