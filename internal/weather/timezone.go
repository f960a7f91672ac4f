package weather

import (
	"fmt"
	"time"
)

const (
	shortLayout = "15:04"
	longLayout  = "2006-01-02 15:04:05"
)

// LocalInstant is an instant together with the fixed offset it is shown in.
// The UTC value is kept so shifting never loses the original instant.
type LocalInstant struct {
	UTC    time.Time
	Offset int // seconds east of UTC
}

// ToLocal shifts instant into a fixed offset. No DST transition handling is
// done: the same offset applies to the whole report window.
func ToLocal(instant time.Time, offsetSeconds int) LocalInstant {
	return LocalInstant{UTC: instant.UTC(), Offset: offsetSeconds}
}

// Time returns the wall-clock time in the instant's offset.
func (l LocalInstant) Time() time.Time {
	return l.UTC.In(time.FixedZone(RenderOffset(l.Offset), l.Offset))
}

// OffsetSeconds returns the offset as observed on the shifted time.
func (l LocalInstant) OffsetSeconds() int {
	_, off := l.Time().Zone()
	return off
}

// RenderOffset formats an offset as UTC±HH:MM.
func RenderOffset(offsetSeconds int) string {
	sign := '+'
	if offsetSeconds < 0 {
		sign = '-'
		offsetSeconds = -offsetSeconds
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, offsetSeconds/3600, (offsetSeconds%3600)/60)
}

// RenderInstant formats l as HH:MM when short, YYYY-MM-DD HH:MM:SS otherwise.
func RenderInstant(l LocalInstant, short bool) string {
	if short {
		return l.Time().Format(shortLayout)
	}
	return l.Time().Format(longLayout)
}

// Normalize returns a copy of slots with the local forecast and run times
// set for tz. The input slice is left untouched.
func Normalize(slots []ForecastSlot, tz TimezoneInfo) []ForecastSlot {
	offset := tz.Offset()
	out := make([]ForecastSlot, len(slots))
	for i, s := range slots {
		s.LocalForecastTime = ToLocal(s.ForecastTime, offset)
		s.LocalRunTime = ToLocal(s.RunTime, offset)
		out[i] = s
	}
	return out
}
