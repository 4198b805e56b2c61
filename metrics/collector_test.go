package metrics

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/coursematch/core"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Finish(t *testing.T) {
	c := NewCollector()

	c.Finish([]core.Result{{Item: &core.Item{Name: "A"}, Similarity: 0.8}}, 2*time.Millisecond)
	c.Finish(nil, 4*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.queriesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.emptyResultsTotal))

	s := c.Summary()
	assert.Equal(t, 2, s.Queries)
	assert.Equal(t, 1, s.EmptyResults)
	assert.InDelta(t, float64(3*time.Millisecond), float64(s.AvgLatency), float64(time.Microsecond))
}

func TestCollector_EmptySummary(t *testing.T) {
	s := NewCollector().Summary()
	assert.Equal(t, Summary{}, s)
}

func TestCollector_Feedback(t *testing.T) {
	c := NewCollector()
	c.ObserveFeedback(core.FeedbackHelpful)
	c.ObserveFeedback(core.FeedbackHelpful)
	c.ObserveFeedback(core.FeedbackNotHelpful)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.feedbackTotal.WithLabelValues("helpful")))

	s := c.Summary()
	assert.Equal(t, 2, s.Helpful)
	assert.Equal(t, 1, s.NotHelpful)
}

func TestCollector_CorpusRows(t *testing.T) {
	c := NewCollector()
	c.SetCorpusRows(8)
	assert.Equal(t, 8, c.Summary().CorpusRows)
}

func TestCollector_Registry(t *testing.T) {
	c := NewCollector()
	c.Finish(nil, time.Millisecond)

	expected := `
# HELP coursematch_queries_total Total number of ranked queries
# TYPE coursematch_queries_total counter
coursematch_queries_total 1
`
	err := testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), "coursematch_queries_total")
	require.NoError(t, err)

	families, err := c.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestCollector_Concurrent(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Finish(nil, time.Microsecond)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, c.Summary().Queries)
}
