package session

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/poiesic/coursematch/catalog"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/metrics"
	"github.com/poiesic/coursematch/search"
	"github.com/poiesic/coursematch/storage"
	"github.com/poiesic/coursematch/storage/badger"
	"github.com/poiesic/coursematch/vectorspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rating(v float64) *float64 { return &v }

func testItems() []*core.Item {
	return []*core.Item{
		{Name: "Quantum Computing Fundamentals", Description: "Qubits, gates and quantum algorithms", Skills: []string{"quantum"}, Topic: "Science", Difficulty: "Advanced", Rating: rating(4.7), Specialized: true},
		{Name: "Python for Data Analysis", Description: "Pandas and numpy for data analysts", Skills: []string{"python", "pandas"}, Topic: "Data & AI", Difficulty: "Beginner", Rating: rating(4.5)},
		{Name: "Excel Essentials", Description: "Spreadsheets and formulas for business", Skills: []string{"excel"}, Topic: "Business", Difficulty: "Beginner", Rating: rating(4.1)},
		{Name: "Machine Learning with Python", Description: "Supervised learning and model evaluation", Skills: []string{"python", "machine learning"}, Topic: "Data & AI", Difficulty: "Intermediate"},
	}
}

func newTestEngine(t *testing.T, items []*core.Item) *search.Engine {
	t.Helper()
	docs := make([]string, len(items))
	for i, it := range items {
		docs[i] = search.Normalize(it.Text())
	}
	fitter := vectorspace.NewFitter()
	vocab, err := fitter.Fit(docs)
	require.NoError(t, err)

	rows := make([]vectorspace.SparseVector, len(docs))
	for i, d := range docs {
		rows[i] = fitter.Transform(vocab, d)
	}
	matrix, err := vectorspace.NewMatrix(rows, vocab.Size())
	require.NoError(t, err)

	corpus, _, err := search.NewCorpus(catalog.NewStore(items), vocab, matrix)
	require.NoError(t, err)
	engine, err := search.NewEngine(corpus)
	require.NoError(t, err)
	return engine
}

type fixture struct {
	service *Service
	repos   *badger.MemoryRepositories
	metrics *metrics.Collector
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	collector := metrics.NewCollector()
	opts = append([]Option{WithMetrics(collector)}, opts...)
	svc, err := NewService(newTestEngine(t, testItems()), repos.History, repos.Feedback, opts...)
	require.NoError(t, err)

	return &fixture{service: svc, repos: repos, metrics: collector}
}

func TestNewService_Requirements(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()
	engine := newTestEngine(t, testItems())

	_, err = NewService(nil, repos.History, repos.Feedback)
	assert.ErrorIs(t, err, ErrEngineRequired)
	_, err = NewService(engine, nil, repos.Feedback)
	assert.ErrorIs(t, err, ErrHistoryRepositoryRequired)
	_, err = NewService(engine, repos.History, nil)
	assert.ErrorIs(t, err, ErrFeedbackRepositoryRequired)
}

func TestRecommend_RecordsHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.service.Recommend(ctx, Request{Query: "Learn Python for data!", TopK: 2})
	require.NoError(t, err)

	assert.Equal(t, "learn python for data", resp.Normalized)
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "Python for Data Analysis", resp.Recommendations[0].Item.Name)
	assert.Nil(t, resp.Recommendations[0].Explanation)
	assert.NotZero(t, resp.EntryID)

	entry, err := f.repos.History.GetEntry(ctx, resp.EntryID)
	require.NoError(t, err)
	assert.Equal(t, "Learn Python for data!", entry.Query)
	assert.Equal(t, 2, entry.TopK)
	assert.Equal(t, []string{"Python for Data Analysis", resp.Recommendations[1].Item.Name}, entry.ResultNames)
	assert.Equal(t, resp.Recommendations[0].Similarity, entry.TopSimilarity)

	assert.Equal(t, 1, f.metrics.Summary().Queries)
	assert.Equal(t, 4, f.metrics.Summary().CorpusRows)
}

func TestRecommend_Filters(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.Recommend(context.Background(), Request{
		Query:   "python",
		TopK:    5,
		Filters: search.Filters{Difficulties: []string{"Intermediate"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, "Machine Learning with Python", resp.Recommendations[0].Item.Name)
}

func TestRecommend_EmptyResultsStillRecorded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.service.Recommend(ctx, Request{Query: "1234 !!!", TopK: 5})
	require.NoError(t, err)
	assert.Empty(t, resp.Recommendations)
	assert.NotZero(t, resp.EntryID)

	count, err := f.repos.History.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, f.metrics.Summary().EmptyResults)
}

func TestRecommend_BlankQuery(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Recommend(context.Background(), Request{Query: "   ", TopK: 5})
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestRecommend_Explain(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.Recommend(context.Background(), Request{Query: "quantum algorithms", TopK: 1, Explain: true})
	require.NoError(t, err)
	require.Len(t, resp.Recommendations, 1)

	ex := resp.Recommendations[0].Explanation
	require.NotNil(t, ex)
	assert.NotEmpty(t, ex.Relevance)
	assert.NotEmpty(t, ex.Context)
}

// unavailableHistory fails every write.
type unavailableHistory struct {
	storage.HistoryRepository
}

func (unavailableHistory) AddEntries(context.Context, ...*core.HistoryEntry) ([]*core.HistoryEntry, error) {
	return nil, storage.ErrStorageClosed
}

func TestRecommend_AnsweredWhenHistoryUnavailable(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	svc, err := NewService(newTestEngine(t, testItems()), unavailableHistory{repos.History}, repos.Feedback)
	require.NoError(t, err)

	resp, err := svc.Recommend(context.Background(), Request{Query: "excel", TopK: 1})
	require.NoError(t, err)
	assert.Zero(t, resp.EntryID)
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, "Excel Essentials", resp.Recommendations[0].Item.Name)
}

func TestHistory_MostRecentFirst(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	f := newFixture(t, WithClock(clock))
	ctx := context.Background()

	for _, q := range []string{"python", "excel", "quantum"} {
		_, err := f.service.Recommend(ctx, Request{Query: q, TopK: 1})
		require.NoError(t, err)
	}

	entries, err := f.service.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "quantum", entries[0].Query)
	assert.Equal(t, "excel", entries[1].Query)
	assert.Equal(t, base.Add(3*time.Minute), entries[0].Timestamp.UTC())

	require.NoError(t, f.service.ClearHistory(ctx))
	entries, err = f.service.History(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFeedback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.RecordFeedback(ctx, core.FeedbackHelpful)
	require.NoError(t, err)
	_, err = f.service.RecordFeedback(ctx, core.FeedbackHelpful)
	require.NoError(t, err)
	tally, err := f.service.RecordFeedback(ctx, core.FeedbackNotHelpful)
	require.NoError(t, err)

	assert.Equal(t, 2, tally.Helpful)
	assert.Equal(t, 1, tally.NotHelpful)
	assert.InDelta(t, 66.67, tally.PositiveRate(), 0.01)

	_, err = f.service.RecordFeedback(ctx, core.FeedbackKind(9))
	assert.ErrorIs(t, err, core.ErrInvalidFeedbackKind)

	current, err := f.service.Feedback(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, current.Total())

	s := f.metrics.Summary()
	assert.Equal(t, 2, s.Helpful)
	assert.Equal(t, 1, s.NotHelpful)
}

func TestStats(t *testing.T) {
	advisory := &catalog.Advisory{CatalogRows: 5, IndexRows: 4, Kept: 4}
	f := newFixture(t, WithAdvisory(advisory))
	ctx := context.Background()

	st, err := f.service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Queries)
	assert.Zero(t, st.AverageLatency)
	assert.Equal(t, 4, st.Catalog.Items)
	assert.Equal(t, 3, st.Catalog.Rated)
	assert.Same(t, advisory, st.Advisory)

	_, err = f.service.Recommend(ctx, Request{Query: "python", TopK: 3})
	require.NoError(t, err)
	_, err = f.service.RecordFeedback(ctx, core.FeedbackHelpful)
	require.NoError(t, err)

	st, err = f.service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Queries)
	assert.Equal(t, 1, st.Feedback.Helpful)
}

func TestExportHistoryCSV(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	f := newFixture(t, WithClock(clock))
	ctx := context.Background()

	_, err := f.service.Recommend(ctx, Request{Query: "python, data", TopK: 2})
	require.NoError(t, err)
	_, err = f.service.Recommend(ctx, Request{
		Query:   "excel",
		TopK:    1,
		Filters: search.Filters{Topics: []string{"Business"}, MinRating: 4},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := f.service.ExportHistoryCSV(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeader, records[0])

	assert.Equal(t, "2025-03-01T09:00:01Z", records[1][0])
	assert.Equal(t, "python, data", records[1][1])
	assert.Equal(t, "2", records[1][2])
	assert.Equal(t, "", records[1][6])

	assert.Equal(t, "excel", records[2][1])
	assert.Equal(t, "1", records[2][2])
	assert.Equal(t, "Excel Essentials", records[2][3])
	assert.Equal(t, "topic=Business min_rating=4.0", records[2][6])
}
