package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_Register(t *testing.T) {
	t.Parallel()

	s := New(context.Background(), time.Second)
	noop := func(context.Context) error { return nil }

	require.NoError(t, s.Register("@daily", "daily", noop))
	require.NoError(t, s.Register("0 */6 * * *", "six-hourly", noop))
	assert.Equal(t, 2, s.Len())

	err := s.Register("not a schedule", "broken", noop)
	assert.Error(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestScheduler_RunNow(t *testing.T) {
	t.Parallel()

	s := New(context.Background(), 50*time.Millisecond)

	t.Run("job receives a deadline", func(t *testing.T) {
		err := s.RunNow("deadline", func(ctx context.Context) error {
			_, ok := ctx.Deadline()
			assert.True(t, ok)
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("job error is returned", func(t *testing.T) {
		errJob := errors.New("import failed")
		err := s.RunNow("failing", func(context.Context) error { return errJob })
		assert.ErrorIs(t, err, errJob)
	})

	t.Run("timeout cancels the job", func(t *testing.T) {
		err := s.RunNow("slow", func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	s := New(context.Background(), 0)
	require.NoError(t, s.Register("@every 1h", "idle", func(context.Context) error { return nil }))
	s.Start()
	s.Stop()
}
