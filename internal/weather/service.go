package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	// ErrDataUnavailable is returned when the forecast feed yields no usable slots.
	ErrDataUnavailable = errors.New("forecast data unavailable")
	// ErrInvalidCoordinate is returned for coordinates outside the valid range.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

var validate = validator.New()

// Service runs the report pipeline: forecast fetch, correction, astro fetch,
// time zone normalization, day bucketing and rendering. It holds no mutable
// state, so concurrent reports are independent.
type Service struct {
	forecasts ForecastSource
	astro     AstroSource
	places    PlaceResolver
	renderer  Renderer
	maxDays   int
	now       func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithPlaceResolver adds a reverse-geocoded place line to reports.
func WithPlaceResolver(p PlaceResolver) Option {
	return func(s *Service) { s.places = p }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new Service. maxDays is the default day cap.
func NewService(forecasts ForecastSource, astro AstroSource, renderer Renderer, maxDays int, opts ...Option) *Service {
	s := &Service{
		forecasts: forecasts,
		astro:     astro,
		renderer:  renderer,
		maxDays:   maxDays,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxDays returns the default day cap.
func (s *Service) MaxDays() int {
	return s.maxDays
}

// Prepare fetches both feeds and builds the renderer input. maxDays <= 0
// selects the service default.
func (s *Service) Prepare(ctx context.Context, coord Coordinate, maxDays int) (ReportInput, error) {
	if err := validate.Struct(coord); err != nil {
		return ReportInput{}, fmt.Errorf("%w: %v", ErrInvalidCoordinate, err)
	}
	if maxDays <= 0 {
		maxDays = s.maxDays
	}

	series, err := s.forecasts.FetchForecast(ctx, coord)
	if err != nil {
		return ReportInput{}, err
	}
	if len(series.Slots) == 0 {
		return ReportInput{}, fmt.Errorf("%w: no forecast slots for %s", ErrDataUnavailable, coord.Key())
	}

	now := s.now()
	correction := ComputeCorrection(series, now)
	if correction == nil {
		log.Printf("DEBUG: no correction window for %s; astro request sent without refinements", coord.Key())
	}

	astro, tz := s.astro.FetchAstro(ctx, coord, correction)

	slots := Normalize(series.Slots, tz)
	days := Bucket(slots, maxDays)

	meta := series.Metadata
	if s.places != nil {
		place, err := s.places.ResolvePlace(ctx, coord)
		if err != nil {
			log.Printf("INFO: place lookup failed for %s: %v", coord.Key(), err)
		} else {
			meta.Place = place
		}
	}

	return ReportInput{
		Metadata:    meta,
		Timezone:    tz,
		Astro:       astro,
		Days:        days,
		GeneratedAt: now,
	}, nil
}

// Report produces a fresh rendered report for coord.
func (s *Service) Report(ctx context.Context, coord Coordinate, maxDays int) (Report, error) {
	id := uuid.NewString()
	log.Printf("DEBUG: report %s requested for %s", id, coord.Key())

	in, err := s.Prepare(ctx, coord, maxDays)
	if err != nil {
		log.Printf("ERROR: report %s for %s failed: %v", id, coord.Key(), err)
		return Report{}, err
	}

	text := s.renderer.Render(in)
	log.Printf("DEBUG: report %s rendered: %d days, tz %s (%s)", id, len(in.Days), in.Timezone.ID, in.Timezone.Status)

	return Report{
		ID:          id,
		Text:        text,
		ParseMode:   s.renderer.ParseMode(),
		GeneratedAt: in.GeneratedAt,
	}, nil
}
