package search

import (
	"time"

	"github.com/poiesic/coursematch/core"
)

// RankMonitor provides hooks to observe the ranking process.
// Implementations shared between engines must be safe for concurrent use.
type RankMonitor interface {
	Start(query string)
	AfterNormalize(normalized string)
	AfterScoring(rows int)
	AfterFilter(kept int)
	Finish(results []core.Result, elapsed time.Duration)
}

// noopMonitor is a no-op implementation of RankMonitor
type noopMonitor struct{}

var _ RankMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                          {}
func (n *noopMonitor) AfterNormalize(_ string)                 {}
func (n *noopMonitor) AfterScoring(_ int)                      {}
func (n *noopMonitor) AfterFilter(_ int)                       {}
func (n *noopMonitor) Finish(_ []core.Result, _ time.Duration) {}
