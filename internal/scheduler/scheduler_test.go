package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-odds/internal/service"
)

type stubSlate struct {
	date   time.Time
	count  int
	calls  int
	report *service.SlateReport
	err    error
}

func (s *stubSlate) RunSlate(_ context.Context, date time.Time, count int) (*service.SlateReport, error) {
	s.calls++
	s.date = date
	s.count = count
	return s.report, s.err
}

func TestScheduleSlate(t *testing.T) {
	s := NewScheduler(&stubSlate{}, 1000, nil)

	assert.Error(t, s.ScheduleSlate("not a cron"))
	assert.Error(t, s.Start(), "no jobs scheduled")

	require.NoError(t, s.ScheduleSlate("0 0 15 * * *"))
	require.Len(t, s.Entries(), 1)
	assert.True(t, s.GetNextRun().IsZero())

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.Error(t, s.Start())
	assert.Error(t, s.ScheduleSlate("0 0 16 * * *"))

	next := s.GetNextRun()
	require.False(t, next.IsZero())
	assert.Equal(t, 15, next.UTC().Hour())
	assert.Equal(t, 0, next.UTC().Minute())

	require.NoError(t, s.Stop(context.Background()))
	assert.False(t, s.IsRunning())
	assert.NoError(t, s.Stop(context.Background()))
}

func TestRunSlate(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		slate := &stubSlate{report: &service.SlateReport{Date: "2024-06-01", Games: 3, Succeeded: 3}}
		s := NewScheduler(slate, 2500, nil)
		s.now = func() time.Time { return fixed }

		report, err := s.RunSlate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, report.Succeeded)
		assert.Equal(t, fixed, slate.date)
		assert.Equal(t, 2500, slate.count)
	})

	t.Run("failure", func(t *testing.T) {
		slate := &stubSlate{err: errors.New("upstream down")}
		s := NewScheduler(slate, 1000, nil)

		report, err := s.RunSlate(context.Background())
		assert.Error(t, err)
		assert.Nil(t, report)
		assert.Equal(t, 1, slate.calls)
	})
}
