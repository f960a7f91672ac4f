package weather

import (
	"context"
	"time"
)

// ForecastSource fetches the NWP forecast series for a coordinate.
// Failures are reported as errors wrapping ErrDataUnavailable.
type ForecastSource interface {
	FetchForecast(ctx context.Context, coord Coordinate) (ForecastSeries, error)
}

// AstroSource fetches astronomical events and time zone data. It never
// fails: when the feed is unreachable it returns NoAstroData and
// DefaultTimezone. A nil correction sends no correction parameters.
type AstroSource interface {
	FetchAstro(ctx context.Context, coord Coordinate, correction *CorrectionParameters) (AstroSnapshot, TimezoneInfo)
}

// PlaceResolver turns a coordinate into a human-readable place name.
type PlaceResolver interface {
	ResolvePlace(ctx context.Context, coord Coordinate) (string, error)
}

// ReportInput is everything the renderer needs for one report.
type ReportInput struct {
	Metadata    QueryMetadata
	Timezone    TimezoneInfo
	Astro       AstroSnapshot
	Days        []LocalDay
	GeneratedAt time.Time
}

// Renderer turns a ReportInput into the outbound text.
type Renderer interface {
	Render(in ReportInput) string
	ParseMode() string
}
