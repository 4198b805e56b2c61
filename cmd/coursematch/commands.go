package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/coursematch"
	"github.com/poiesic/coursematch/catalog"
	"github.com/poiesic/coursematch/config"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/indexer"
	"github.com/poiesic/coursematch/metrics"
	"github.com/poiesic/coursematch/search"
	"github.com/poiesic/coursematch/session"
	"github.com/poiesic/coursematch/vectorspace"
	"github.com/urfave/cli/v2"
)

func openDatabase(cfg *config.Config, logger *slog.Logger) (*coursematch.Database, error) {
	db, err := coursematch.NewDatabase(cfg.DB.Path, coursematch.WithDatabaseLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// openSession opens the database and a session over its snapshot.
// The caller must Close the returned database.
func openSession(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...session.Option) (*coursematch.Database, *session.Service, error) {
	db, err := openDatabase(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	svc, err := db.NewSession(ctx, opts...)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, svc, nil
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg := configFrom(c)

	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("catalog file is required")
	}
	if c.IsSet("batch-size") {
		cfg.Index.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("pool-size") {
		cfg.Index.PoolSize = c.Int("pool-size")
	}
	if c.IsSet("report-interval") {
		cfg.Index.ReportInterval = c.Int("report-interval")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	items, err := catalog.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	db, err := openDatabase(cfg, loggerFrom(c))
	if err != nil {
		return err
	}
	defer db.Close()

	fitter := vectorspace.NewFitter(
		vectorspace.WithStopWords(cfg.Index.StopWords),
		vectorspace.WithMinTokenLength(cfg.Index.MinTokenLength),
	)
	ix, err := db.NewIndexer(
		indexer.WithFitter(fitter),
		indexer.WithBatchSize(cfg.Index.BatchSize),
		indexer.WithPoolSize(cfg.Index.PoolSize),
		indexer.WithMaxRetries(cfg.Index.MaxRetries),
		indexer.WithRetryDelay(cfg.Index.RetryDelay),
		indexer.WithProgress(c.App.ErrWriter, cfg.Index.ReportInterval),
	)
	if err != nil {
		return fmt.Errorf("failed to create indexer: %w", err)
	}
	defer ix.Release()

	fmt.Fprintf(c.App.ErrWriter, "Indexing %d items from %s (batch size: %d)\n", len(items), path, cfg.Index.BatchSize)
	info, err := ix.Build(ctx, items)
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Indexed %d items with %d terms\n", info.Items, info.Terms)
	return nil
}

// requestFrom builds a request from query flags, falling back to cfg.
func requestFrom(c *cli.Context, cfg *config.Config, query string) session.Request {
	req := session.Request{
		Query: query,
		TopK:  cfg.Search.TopK,
		Filters: search.Filters{
			Difficulties: trimLabels(c.StringSlice("difficulty")),
			Topics:       trimLabels(c.StringSlice("topic")),
			MinRating:    cfg.Search.MinRating,
		},
		Explain: cfg.Search.Explain || c.Bool("explain"),
	}
	if c.IsSet("top-k") {
		req.TopK = c.Int("top-k")
	}
	if c.IsSet("min-rating") {
		req.Filters.MinRating = c.Float64("min-rating")
	}
	return req
}

// trimLabels strips surrounding blanks from flag values. Case is kept.
func trimLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func queryCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg := configFrom(c)

	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query text is required")
	}

	db, svc, err := openSession(ctx, cfg, loggerFrom(c))
	if err != nil {
		return err
	}
	defer db.Close()

	resp, err := svc.Recommend(ctx, requestFrom(c, cfg, query))
	if err != nil {
		return err
	}

	if c.Bool("json") {
		return writeJSON(c.App.Writer, resp)
	}
	printResponse(c.App.Writer, resp)
	return nil
}

func historyCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg := configFrom(c)

	db, err := openDatabase(cfg, loggerFrom(c))
	if err != nil {
		return err
	}
	defer db.Close()

	if c.Bool("clear") {
		if err := db.HistoryRepository().Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, "History cleared")
		return nil
	}

	limit := cfg.History.Limit
	if c.IsSet("limit") {
		limit = c.Int("limit")
	}
	entries, err := db.HistoryRepository().GetRecentEntries(ctx, limit)
	if err != nil {
		return err
	}

	printHistory(c.App.Writer, entries)
	return nil
}

func exportHistoryCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg := configFrom(c)

	db, svc, err := openSession(ctx, cfg, loggerFrom(c))
	if err != nil {
		return err
	}
	defer db.Close()

	w := c.App.Writer
	if out := c.String("out"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	n, err := svc.ExportHistoryCSV(ctx, w)
	if err != nil {
		return err
	}
	if c.String("out") != "" {
		fmt.Fprintf(c.App.Writer, "Exported %d queries to %s\n", n, c.String("out"))
	}
	return nil
}

func feedbackCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg := configFrom(c)

	var kind core.FeedbackKind
	switch {
	case c.Bool("helpful") && c.Bool("not-helpful"):
		return fmt.Errorf("choose one of --helpful or --not-helpful")
	case c.Bool("helpful"):
		kind = core.FeedbackHelpful
	case c.Bool("not-helpful"):
		kind = core.FeedbackNotHelpful
	default:
		return fmt.Errorf("one of --helpful or --not-helpful is required")
	}

	db, err := openDatabase(cfg, loggerFrom(c))
	if err != nil {
		return err
	}
	defer db.Close()

	tally, err := db.FeedbackRepository().Record(ctx, kind)
	if err != nil {
		return err
	}

	printTally(c.App.Writer, tally)
	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg := configFrom(c)

	db, svc, err := openSession(ctx, cfg, loggerFrom(c))
	if err != nil {
		return err
	}
	defer db.Close()

	st, err := svc.Stats(ctx)
	if err != nil {
		return err
	}

	printStats(c.App.Writer, st)
	return nil
}

func topicsCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg := configFrom(c)

	db, err := openDatabase(cfg, loggerFrom(c))
	if err != nil {
		return err
	}
	defer db.Close()

	corpus, _, err := db.LoadCorpus(ctx)
	if err != nil {
		if errors.Is(err, coursematch.ErrNoSnapshot) {
			return fmt.Errorf("%w (coursematch index CATALOG)", err)
		}
		return err
	}

	store := corpus.Store()
	fmt.Fprintln(c.App.Writer, "Topics:")
	for _, topic := range store.Topics() {
		fmt.Fprintf(c.App.Writer, "  %s\n", topic)
	}
	fmt.Fprintln(c.App.Writer, "Difficulty levels:")
	for _, level := range store.Difficulties() {
		fmt.Fprintf(c.App.Writer, "  %s\n", level)
	}
	return nil
}

func shellCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg := configFrom(c)

	collector := metrics.NewCollector()
	db, svc, err := openSession(ctx, cfg, loggerFrom(c), session.WithMetrics(collector))
	if err != nil {
		return err
	}
	defer db.Close()

	err = runShell(ctx, c.App.Reader, c.App.Writer, svc, func(query string) session.Request {
		return requestFrom(c, cfg, query)
	}, c.Bool("json"))
	printSummary(c.App.Writer, collector.Summary())
	return err
}
