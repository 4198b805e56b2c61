package search

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/poiesic/coursematch/catalog"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/vectorspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rating(v float64) *float64 {
	return &v
}

// buildCorpus fits a vocabulary over items and indexes every item.
func buildCorpus(t *testing.T, items []*core.Item) *Corpus {
	t.Helper()
	docs := make([]string, len(items))
	for i, it := range items {
		docs[i] = Normalize(it.Text())
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

	corpus, adv, err := NewCorpus(catalog.NewStore(items), vocab, matrix)
	require.NoError(t, err)
	require.Nil(t, adv)
	return corpus
}

func newTestEngine(t *testing.T, items []*core.Item) *Engine {
	t.Helper()
	e, err := NewEngine(buildCorpus(t, items))
	require.NoError(t, err)
	return e
}

func names(results []core.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Item.Name
	}
	return out
}

func TestNewEngine(t *testing.T) {
	corpus := buildCorpus(t, []*core.Item{{Name: "Quantum Basics"}})

	t.Run("valid configuration", func(t *testing.T) {
		e, err := NewEngine(corpus)
		require.NoError(t, err)
		assert.Same(t, corpus, e.Corpus())
	})

	t.Run("with custom logger and nil monitor", func(t *testing.T) {
		e, err := NewEngine(corpus, WithLogger(slog.Default()), WithMonitor(nil))
		require.NoError(t, err)
		assert.NotNil(t, e.monitor)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		e, err := NewEngine(corpus, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, e.logger)
	})

	t.Run("nil corpus", func(t *testing.T) {
		_, err := NewEngine(nil)
		assert.Equal(t, ErrCorpusRequired, err)
	})
}

func TestRank_EndToEnd(t *testing.T) {
	items := []*core.Item{
		{Name: "A", Topic: "X", Difficulty: "Beginner", Rating: rating(4.5), Description: "quantum computing basics"},
		{Name: "B", Topic: "Y", Difficulty: "Advanced", Rating: rating(4.8), Description: "cooking recipes"},
	}
	e := newTestEngine(t, items)

	results := e.Rank("quantum computing", 2, Filters{})
	require.Len(t, results, 2)
	assert.Equal(t, []string{"A", "B"}, names(results))
	assert.Greater(t, results[0].Similarity, results[1].Similarity)
	assert.InDelta(t, 0, results[1].Similarity, 1e-6)
	assert.Equal(t, 0, results[0].Row)
	assert.Equal(t, 1, results[1].Row)
}

func TestRank_EmptyInputs(t *testing.T) {
	e := newTestEngine(t, []*core.Item{
		{Name: "Quantum Basics", Rating: rating(4)},
		{Name: "Cooking", Rating: rating(5)},
	})

	t.Run("query without letters", func(t *testing.T) {
		assert.Empty(t, e.Rank("!!! 2024", 5, Filters{}))
		assert.Empty(t, e.Rank("", 5, Filters{}))
	})

	t.Run("non-positive top k", func(t *testing.T) {
		assert.Empty(t, e.Rank("quantum", 0, Filters{}))
		assert.Empty(t, e.Rank("quantum", -3, Filters{}))
	})

	t.Run("filters exclude everything", func(t *testing.T) {
		assert.Empty(t, e.Rank("quantum", 5, Filters{Topics: []string{"Nope"}}))
	})

	t.Run("out of vocabulary query scores zero", func(t *testing.T) {
		results := e.Rank("zzyzx", 5, Filters{})
		require.Len(t, results, 2)
		for _, r := range results {
			assert.False(t, math.IsNaN(float64(r.Similarity)))
			assert.Equal(t, float32(0), r.Similarity)
		}
		// Equal similarity falls back to rating
		assert.Equal(t, []string{"Cooking", "Quantum Basics"}, names(results))
	})
}

func TestRank_OrderingContract(t *testing.T) {
	same := func(name string, r *float64, special bool) *core.Item {
		return &core.Item{Name: name, Rating: r, Specialized: special}
	}
	rows := []core.Result{
		{Item: same("unrated special", nil, true), Row: 0, Similarity: 0.5},
		{Item: same("rated zero", rating(0), false), Row: 1, Similarity: 0.5},
		{Item: same("plain", rating(4.5), false), Row: 2, Similarity: 0.5},
		{Item: same("special", rating(4.5), true), Row: 3, Similarity: 0.5},
		{Item: same("plain twin", rating(4.5), false), Row: 4, Similarity: 0.5},
		{Item: same("best match", rating(1), false), Row: 5, Similarity: 0.9},
	}

	sorted := append([]core.Result(nil), rows...)
	slices.SortStableFunc(sorted, compareResults)

	assert.Equal(t, []string{
		"best match",
		"special",
		"plain",
		"plain twin",
		"rated zero",
		"unrated special",
	}, names(sorted))
}

func TestRank_StableForIdenticalKeys(t *testing.T) {
	items := make([]*core.Item, 6)
	for i := range items {
		items[i] = &core.Item{Name: "course", Description: "data analysis", Rating: rating(4)}
	}
	e := newTestEngine(t, items)

	results := e.Rank("data analysis", 6, Filters{})
	require.Len(t, results, 6)
	for i, r := range results {
		assert.Equal(t, i, r.Row, "catalog order must be preserved for ties")
	}
}

func TestRank_Filters(t *testing.T) {
	items := []*core.Item{
		{Name: "Intro Python", Difficulty: "Beginner", Topic: "Data & AI", Rating: rating(4.2)},
		{Name: "Advanced Python", Difficulty: "Advanced", Topic: "Data & AI", Rating: rating(4.8)},
		{Name: "Python for Business", Difficulty: "Intermediate", Topic: "Business"},
		{Name: "Python Design", Difficulty: "Beginner", Topic: "Creative", Rating: rating(3.1)},
	}
	e := newTestEngine(t, items)

	t.Run("difficulty set", func(t *testing.T) {
		got := e.Rank("python", 10, Filters{Difficulties: []string{"Beginner"}})
		assert.ElementsMatch(t, []string{"Intro Python", "Python Design"}, names(got))
	})

	t.Run("labels match exactly", func(t *testing.T) {
		got := e.Rank("python", 10, Filters{Difficulties: []string{"beginner", " Beginner"}})
		assert.Empty(t, got)
	})

	t.Run("topic set", func(t *testing.T) {
		got := e.Rank("python", 10, Filters{Topics: []string{"Business", "Creative"}})
		assert.ElementsMatch(t, []string{"Python for Business", "Python Design"}, names(got))
	})

	t.Run("min rating excludes unrated", func(t *testing.T) {
		got := e.Rank("python", 10, Filters{MinRating: 4})
		assert.ElementsMatch(t, []string{"Intro Python", "Advanced Python"}, names(got))
	})

	t.Run("zero min rating keeps unrated", func(t *testing.T) {
		got := e.Rank("python", 10, Filters{MinRating: 0})
		assert.Len(t, got, 4)
	})

	t.Run("conjunction", func(t *testing.T) {
		got := e.Rank("python", 10, Filters{
			Difficulties: []string{"Beginner", "Advanced"},
			Topics:       []string{"Data & AI"},
			MinRating:    4.5,
		})
		assert.Equal(t, []string{"Advanced Python"}, names(got))
	})
}

func TestRank_FiltersKeepDistinctLabels(t *testing.T) {
	items := []*core.Item{
		{Name: "Python A", Difficulty: "Beginner", Topic: "Data & AI"},
		{Name: "Python B", Difficulty: "beginner ", Topic: "data & ai"},
	}
	e := newTestEngine(t, items)

	got := e.Rank("python", 10, Filters{
		Difficulties: []string{"Beginner"},
		Topics:       []string{"Data & AI"},
	})
	assert.Equal(t, []string{"Python A"}, names(got))

	got = e.Rank("python", 10, Filters{Topics: []string{"data & ai"}})
	assert.Equal(t, []string{"Python B"}, names(got))
}

func TestRank_RandomFilterConjunction(t *testing.T) {
	difficulties := []string{"Beginner", "Intermediate", "Advanced"}
	topics := []string{"Data & AI", "Business", "Creative", "Health"}
	words := []string{"python", "finance", "design", "quantum", "energy", "health"}

	rng := rand.New(rand.NewSource(42))
	items := make([]*core.Item, 40)
	for i := range items {
		it := &core.Item{
			Name:        fmt.Sprintf("course %d", i),
			Description: words[rng.Intn(len(words))] + " " + words[rng.Intn(len(words))],
			Difficulty:  difficulties[rng.Intn(len(difficulties))],
			Topic:       topics[rng.Intn(len(topics))],
			Specialized: rng.Intn(2) == 0,
		}
		if rng.Intn(4) != 0 {
			it.Rating = rating(float64(rng.Intn(11)) / 2)
		}
		items[i] = it
	}
	e := newTestEngine(t, items)

	pick := func(from []string) []string {
		var out []string
		for _, s := range from {
			if rng.Intn(2) == 0 {
				out = append(out, s)
			}
		}
		return out
	}

	for trial := 0; trial < 100; trial++ {
		f := Filters{
			Difficulties: pick(difficulties),
			Topics:       pick(topics),
			MinRating:    float64(rng.Intn(6)),
		}
		k := 1 + rng.Intn(12)
		query := words[rng.Intn(len(words))]

		results := e.Rank(query, k, f)

		passing := 0
		for _, it := range items {
			if f.Match(it) {
				passing++
			}
		}
		assert.Equal(t, min(k, passing), len(results), "trial %d", trial)

		for i, r := range results {
			assert.True(t, f.Match(r.Item), "trial %d: result violates filters", trial)
			if i > 0 {
				prev := results[i-1]
				assert.LessOrEqual(t, compareResults(prev, r), 0, "trial %d: order violated", trial)
				if compareResults(prev, r) == 0 {
					assert.Less(t, prev.Row, r.Row, "trial %d: ties must keep catalog order", trial)
				}
			}
		}
	}
}

func TestRank_AlignmentTruncation(t *testing.T) {
	items := make([]*core.Item, 10)
	for i := range items {
		items[i] = &core.Item{Name: fmt.Sprintf("course %d", i), Description: "machine learning"}
	}
	indexed := buildCorpus(t, items[:8])

	corpus, adv, err := NewCorpus(catalog.NewStore(items), indexed.Vectorizer().Vocabulary(), indexed.Index().Matrix())
	require.NoError(t, err)
	require.NotNil(t, adv)
	assert.Equal(t, 10, adv.CatalogRows)
	assert.Equal(t, 8, adv.IndexRows)
	assert.Equal(t, 8, corpus.Len())

	e, err := NewEngine(corpus)
	require.NoError(t, err)
	results := e.Rank("machine learning", 20, Filters{})
	assert.Len(t, results, 8)
	for _, r := range results {
		assert.Less(t, r.Row, 8)
		assert.NotEqual(t, "course 8", r.Item.Name)
		assert.NotEqual(t, "course 9", r.Item.Name)
	}
}

func TestNewCorpus_Errors(t *testing.T) {
	vocab, err := vectorspace.NewVocabulary([]string{"a", "b"}, []float32{1, 1})
	require.NoError(t, err)
	matrix, err := vectorspace.NewMatrix(nil, 3)
	require.NoError(t, err)
	store := catalog.NewStore(nil)

	_, _, err = NewCorpus(nil, vocab, matrix)
	assert.Equal(t, ErrCatalogRequired, err)
	_, _, err = NewCorpus(store, nil, matrix)
	assert.Equal(t, ErrVocabularyRequired, err)
	_, _, err = NewCorpus(store, vocab, nil)
	assert.Equal(t, ErrMatrixRequired, err)
	_, _, err = NewCorpus(store, vocab, matrix)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

type recordingMonitor struct {
	stages  []string
	kept    int
	results int
	elapsed time.Duration
}

func (m *recordingMonitor) Start(string)          { m.stages = append(m.stages, "start") }
func (m *recordingMonitor) AfterNormalize(string) { m.stages = append(m.stages, "normalize") }
func (m *recordingMonitor) AfterScoring(int)      { m.stages = append(m.stages, "score") }
func (m *recordingMonitor) AfterFilter(kept int) {
	m.stages = append(m.stages, "filter")
	m.kept = kept
}
func (m *recordingMonitor) Finish(r []core.Result, d time.Duration) {
	m.stages = append(m.stages, "finish")
	m.results = len(r)
	m.elapsed = d
}

func TestRankWithMonitor(t *testing.T) {
	e := newTestEngine(t, []*core.Item{
		{Name: "Quantum Basics"},
		{Name: "Cooking"},
		{Name: "Quantum Advanced"},
	})

	t.Run("full pipeline", func(t *testing.T) {
		m := &recordingMonitor{}
		results := e.RankWithMonitor("quantum", 2, Filters{}, m)
		assert.Len(t, results, 2)
		assert.Equal(t, []string{"start", "normalize", "score", "filter", "finish"}, m.stages)
		assert.Equal(t, 3, m.kept)
		assert.Equal(t, 2, m.results)
	})

	t.Run("empty query short-circuits", func(t *testing.T) {
		m := &recordingMonitor{}
		e.RankWithMonitor("123", 2, Filters{}, m)
		assert.Equal(t, []string{"start", "normalize", "finish"}, m.stages)
	})

	t.Run("engine monitor used by default", func(t *testing.T) {
		m := &recordingMonitor{}
		e2, err := NewEngine(e.Corpus(), WithMonitor(m))
		require.NoError(t, err)
		e2.Rank("quantum", 1, Filters{})
		assert.Equal(t, 1, m.results)
	})
}
