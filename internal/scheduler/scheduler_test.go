package scheduler

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-report/internal/dispatch"
	"github.com/i474232898/weather-report/internal/weather"
)

type fakeReporter struct {
	failFor string
}

func (f fakeReporter) Report(ctx context.Context, coord weather.Coordinate, maxDays int) (weather.Report, error) {
	if coord.Key() == f.failFor {
		return weather.Report{}, weather.ErrDataUnavailable
	}
	return weather.Report{ID: coord.Key(), Text: "ok"}, nil
}

type collector struct {
	mu   sync.Mutex
	msgs []dispatch.Message
	err  error
}

func (c *collector) Submit(msg dispatch.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.msgs = append(c.msgs, msg)
	return nil
}

func TestRunOnceSubmitsEverySuccessfulReport(t *testing.T) {
	subs := []weather.Coordinate{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}, {Lat: 5, Lng: 6}}
	out := &collector{}
	s := New(subs, time.Hour, 3, fakeReporter{failFor: subs[1].Key()}, out)

	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	s.RunOnce()

	assert.Contains(t, logs.String(), "INFO: scheduler: running report job")
	assert.Contains(t, logs.String(), "ERROR: scheduler: report failed for "+subs[1].Key())

	require.Len(t, out.msgs, 2)
	var got []string
	for _, m := range out.msgs {
		assert.Equal(t, m.Recipient, m.Report.ID)
		got = append(got, m.Recipient)
	}
	sort.Strings(got)
	assert.Equal(t, []string{subs[0].Key(), subs[2].Key()}, got)
}

func TestRunOnceToleratesClosedQueue(t *testing.T) {
	out := &collector{err: errors.New("closed")}
	s := New([]weather.Coordinate{{Lat: 1, Lng: 1}}, time.Hour, 3, fakeReporter{}, out)

	assert.NotPanics(t, s.RunOnce)
	assert.Empty(t, out.msgs)
}

func TestStartWithoutSubscriptions(t *testing.T) {
	s := New(nil, time.Minute, 3, fakeReporter{}, &collector{})
	require.NoError(t, s.Start())
	s.Stop()
}
