package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderOffset(t *testing.T) {
	cases := map[int]string{
		0:                 "UTC+00:00",
		7200:              "UTC+02:00",
		-5 * 3600:         "UTC-05:00",
		5*3600 + 45*60:    "UTC+05:45",
		-(9*3600 + 30*60): "UTC-09:30",
		14 * 3600:         "UTC+14:00",
	}
	for offset, want := range cases {
		assert.Equal(t, want, RenderOffset(offset), "offset %d", offset)
	}
}

func TestToLocalRoundTripsOffset(t *testing.T) {
	instant := time.Date(2024, 3, 10, 22, 30, 0, 0, time.UTC)
	for _, o := range []int{0, 3600, 7200, -4 * 3600, 5*3600 + 30*60, -(3*3600 + 30*60)} {
		l := ToLocal(instant, o)
		assert.Equal(t, o, l.OffsetSeconds())
		assert.Equal(t, RenderOffset(o), RenderOffset(l.OffsetSeconds()))
		assert.True(t, l.Time().Equal(instant), "shifting must not move the instant")
		assert.Equal(t, instant, l.UTC)
	}
}

func TestRenderInstant(t *testing.T) {
	instant := time.Date(2024, 3, 10, 22, 30, 15, 0, time.UTC)
	l := ToLocal(instant, 2*3600)

	assert.Equal(t, "00:30", RenderInstant(l, true))
	assert.Equal(t, "2024-03-11 00:30:15", RenderInstant(l, false))

	west := ToLocal(instant, -8*3600)
	assert.Equal(t, "2024-03-10 14:30:15", RenderInstant(west, false))
}

func TestNormalizeKeepsUTC(t *testing.T) {
	ft := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	rt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	in := []ForecastSlot{{ForecastTime: ft, RunTime: rt}}
	tz := TimezoneInfo{RawOffsetSeconds: 3600, DSTOffsetSeconds: 3600, Status: TimezoneResolved}

	out := Normalize(in, tz)

	assert.Equal(t, ft, out[0].ForecastTime)
	assert.Equal(t, 7200, out[0].LocalForecastTime.Offset)
	assert.Equal(t, "2024-01-02 01:00:00", RenderInstant(out[0].LocalForecastTime, false))
	assert.Equal(t, "14:00", RenderInstant(out[0].LocalRunTime, true))
	assert.Zero(t, in[0].LocalForecastTime.Offset, "input must not be modified")
}

func TestDefaultTimezone(t *testing.T) {
	tz := DefaultTimezone()
	assert.Equal(t, TimezoneDefault, tz.Status)
	assert.Equal(t, "Etc/UTC", tz.ID)
	assert.Zero(t, tz.Offset())
	assert.False(t, tz.DST())
}
