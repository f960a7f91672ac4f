package weather

import (
	"fmt"
	"time"
)

// Coordinate is a point in signed decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// Key returns a canonical string key for logging this coordinate.
func (c Coordinate) Key() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lng)
}

// ForecastSlot is one forecast instant for a location.
//
// ForecastTime and RunTime are always UTC. The Local* fields are filled in by
// Normalize and carry the same instants together with the report offset.
type ForecastSlot struct {
	ForecastTime time.Time
	RunTime      time.Time

	LocalForecastTime LocalInstant
	LocalRunTime      LocalInstant

	Temperature2m   float64  // °C
	SurfacePressure float64  // Pa
	CloudCoverPct   float64  // 0-100
	MaxWind10m      *float64 // m/s, nil when unknown
	WeatherCode     *int     // ww, nil when unknown
}

// QueryMetadata describes the forecast query as answered by the feed.
type QueryMetadata struct {
	Query    Coordinate `json:"query"`
	Forecast Coordinate `json:"forecast"` // nearest grid point
	Count    int        `json:"count"`
	Place    string     `json:"place,omitempty"`
}

// ForecastSeries is the forecast for one query, ordered by ForecastTime.
type ForecastSeries struct {
	Slots    []ForecastSlot
	Metadata QueryMetadata
}

// TwilightBand is the (begin, end) pair of one twilight period. Either end
// may be nil when the sun never reaches the band's depression angle.
type TwilightBand struct {
	Begin *time.Time
	End   *time.Time
}

// AstroSnapshot holds rise/set and twilight instants (UTC) for a coordinate.
// A nil instant means the event does not happen on that day at that latitude.
type AstroSnapshot struct {
	Available bool

	Sunrise  *time.Time
	Sunset   *time.Time
	Moonrise *time.Time
	Moonset  *time.Time

	Civil        TwilightBand
	Nautical     TwilightBand
	Astronomical TwilightBand
}

// NoAstroData is the snapshot used when the astro feed could not be read.
func NoAstroData() AstroSnapshot {
	return AstroSnapshot{Available: false}
}

// TimezoneStatus tells whether the time zone came from the feed.
type TimezoneStatus string

const (
	TimezoneResolved TimezoneStatus = "resolved"
	TimezoneDefault  TimezoneStatus = "default"
)

// TimezoneInfo is the time zone reported by the astro feed.
type TimezoneInfo struct {
	RawOffsetSeconds int            `json:"rawOffset"`
	DSTOffsetSeconds int            `json:"dstOffset"`
	ID               string         `json:"timeZoneId"`
	Name             string         `json:"timeZoneName"`
	Status           TimezoneStatus `json:"status"`
}

// DefaultTimezone is the UTC fallback used when the astro feed fails.
func DefaultTimezone() TimezoneInfo {
	return TimezoneInfo{
		ID:     "Etc/UTC",
		Name:   "Coordinated Universal Time",
		Status: TimezoneDefault,
	}
}

// Offset returns the effective offset in seconds east of UTC.
func (tz TimezoneInfo) Offset() int {
	return tz.RawOffsetSeconds + tz.DSTOffsetSeconds
}

// DST reports whether daylight saving time is in effect.
func (tz TimezoneInfo) DST() bool {
	return tz.DSTOffsetSeconds != 0
}

// LocalDay is a calendar date in the report time zone and the slots that
// fall on it, in ascending forecast time.
type LocalDay struct {
	Year  int
	Month time.Month
	Day   int
	Slots []ForecastSlot
}

// Date formats the day as YYYY-MM-DD.
func (d LocalDay) Date() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// CorrectionParameters are averages fed back into the astro request to
// refine refraction-dependent rise/set times.
type CorrectionParameters struct {
	AveragePressurePa        float64
	AverageTemperatureKelvin float64
}

// Report is the rendered document handed to delivery.
type Report struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	ParseMode   string    `json:"parseMode"`
	GeneratedAt time.Time `json:"generatedAt"`
}
