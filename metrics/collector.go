package metrics

import (
	"time"

	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/search"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

const namespace = "coursematch"

// Collector implements search.RankMonitor on top of Prometheus instruments.
// It is safe for concurrent use.
type Collector struct {
	registry *prometheus.Registry

	queriesTotal      prometheus.Counter
	emptyResultsTotal prometheus.Counter
	rankDuration      prometheus.Histogram
	resultsReturned   prometheus.Histogram
	topSimilarity     prometheus.Histogram
	feedbackTotal     *prometheus.CounterVec
	corpusRows        prometheus.Gauge
}

var _ search.RankMonitor = (*Collector)(nil)

// Summary is a point-in-time digest of the collected metrics.
type Summary struct {
	Queries      int
	EmptyResults int
	AvgLatency   time.Duration
	Helpful      int
	NotHelpful   int
	CorpusRows   int
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		queriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total number of ranked queries",
		}),

		emptyResultsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_results_total",
			Help:      "Total number of queries that returned no results",
		}),

		rankDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rank_duration_seconds",
			Help:      "Time spent ranking a query in seconds",
			// Ranking is in-memory; most queries finish well under a millisecond
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05, 0.1},
		}),

		resultsReturned: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "results_returned",
			Help:      "Number of results returned per query",
			Buckets:   prometheus.LinearBuckets(0, 1, 11),
		}),

		topSimilarity: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "top_similarity",
			Help:      "Cosine similarity of the best result per query",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),

		feedbackTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "feedback_total",
				Help:      "Total number of recommendation feedback submissions",
			},
			[]string{"kind"},
		),

		corpusRows: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "corpus_rows",
			Help:      "Number of rankable catalog rows",
		}),
	}
}

// Registry returns the registry holding the collector's instruments.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Start(_ string)          {}
func (c *Collector) AfterNormalize(_ string) {}
func (c *Collector) AfterScoring(_ int)      {}
func (c *Collector) AfterFilter(_ int)       {}

// Finish records one completed query.
func (c *Collector) Finish(results []core.Result, elapsed time.Duration) {
	c.queriesTotal.Inc()
	c.rankDuration.Observe(elapsed.Seconds())
	c.resultsReturned.Observe(float64(len(results)))
	if len(results) == 0 {
		c.emptyResultsTotal.Inc()
		return
	}
	c.topSimilarity.Observe(float64(results[0].Similarity))
}

// ObserveFeedback counts one feedback submission.
func (c *Collector) ObserveFeedback(kind core.FeedbackKind) {
	c.feedbackTotal.WithLabelValues(kind.String()).Inc()
}

// SetCorpusRows records the size of the loaded corpus.
func (c *Collector) SetCorpusRows(rows int) {
	c.corpusRows.Set(float64(rows))
}

// Summary reads the current instrument values.
func (c *Collector) Summary() Summary {
	s := Summary{
		Queries:      int(counterValue(c.queriesTotal)),
		EmptyResults: int(counterValue(c.emptyResultsTotal)),
		Helpful:      int(counterValue(c.feedbackTotal.WithLabelValues(core.FeedbackHelpful.String()))),
		NotHelpful:   int(counterValue(c.feedbackTotal.WithLabelValues(core.FeedbackNotHelpful.String()))),
		CorpusRows:   int(gaugeValue(c.corpusRows)),
	}

	var m io_prometheus_client.Metric
	if err := c.rankDuration.Write(&m); err == nil {
		h := m.GetHistogram()
		if n := h.GetSampleCount(); n > 0 {
			s.AvgLatency = time.Duration(h.GetSampleSum() / float64(n) * float64(time.Second))
		}
	}
	return s
}

func counterValue(c prometheus.Counter) float64 {
	var m io_prometheus_client.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(g prometheus.Gauge) float64 {
	var m io_prometheus_client.Metric
	if err := g.Write(&m); err != nil {
		return 0
	}
	return m.GetGauge().GetValue()
}
