package badger

import (
	"context"
	"sync"
	"testing"

	"github.com/poiesic/coursematch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedback_RecordAndTally(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	tally, err := repos.Feedback.Tally(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, tally.Total())

	_, err = repos.Feedback.Record(ctx, core.FeedbackHelpful)
	require.NoError(t, err)
	_, err = repos.Feedback.Record(ctx, core.FeedbackHelpful)
	require.NoError(t, err)
	updated, err := repos.Feedback.Record(ctx, core.FeedbackNotHelpful)
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Helpful)
	assert.Equal(t, 1, updated.NotHelpful)
	assert.False(t, updated.UpdatedAt.IsZero())

	tally, err = repos.Feedback.Tally(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, tally.Total())
}

func TestFeedback_InvalidKind(t *testing.T) {
	repos := newRepos(t)

	_, err := repos.Feedback.Record(context.Background(), core.FeedbackKind(42))
	assert.ErrorIs(t, err, core.ErrInvalidFeedbackKind)
}

func TestFeedback_Reset(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	_, err := repos.Feedback.Record(ctx, core.FeedbackHelpful)
	require.NoError(t, err)
	require.NoError(t, repos.Feedback.Reset(ctx))

	tally, err := repos.Feedback.Tally(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, tally.Total())
}

func TestFeedback_ConcurrentRecords(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repos.Feedback.Record(ctx, core.FeedbackHelpful); err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	tally, err := repos.Feedback.Tally(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4-failures, tally.Helpful, "every successful vote is counted once")
}
