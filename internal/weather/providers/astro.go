package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/i474232898/weather-report/internal/weather"
	"github.com/sony/gobreaker"
)

// AstroProvider implements weather.AstroSource for the astronomy/time zone feed.
type AstroProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

var _ weather.AstroSource = (*AstroProvider)(nil)

func NewAstroProvider(cfg HTTPClientConfig, baseURL string) *AstroProvider {
	return &AstroProvider{
		name:    "astro",
		baseURL: baseURL,
		httpCfg: cfg,
		circuit: newCircuitBreaker("astro"),
	}
}

func (p *AstroProvider) Name() string {
	return p.name
}

// FetchAstro returns the astro snapshot and time zone for coord. A failed
// request degrades to weather.NoAstroData and weather.DefaultTimezone.
func (p *AstroProvider) FetchAstro(ctx context.Context, coord weather.Coordinate, correction *weather.CorrectionParameters) (weather.AstroSnapshot, weather.TimezoneInfo) {
	snapshot, tz, err := p.fetch(ctx, coord, correction)
	if err != nil {
		log.Printf("INFO: providers: astro feed unavailable for %s, falling back to %s: %v",
			coord.Key(), weather.DefaultTimezone().ID, err)
		return weather.NoAstroData(), weather.DefaultTimezone()
	}
	return snapshot, tz
}

func (p *AstroProvider) fetch(ctx context.Context, coord weather.Coordinate, correction *weather.CorrectionParameters) (weather.AstroSnapshot, weather.TimezoneInfo, error) {
	var query map[string]string
	if correction != nil {
		query = map[string]string{
			"pressure":    fmt.Sprintf("%.1f", correction.AveragePressurePa),
			"temperature": fmt.Sprintf("%.2f", correction.AverageTemperatureKelvin),
		}
	}

	body, err := doRequest(ctx, p.httpCfg, p.circuit, feedURL(p.baseURL, coord.Lat, coord.Lng), query)
	if err != nil {
		return weather.AstroSnapshot{}, weather.TimezoneInfo{}, err
	}

	var payload astroPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.AstroSnapshot{}, weather.TimezoneInfo{}, fmt.Errorf("failed to parse astro response: %w", err)
	}

	snapshot := weather.AstroSnapshot{
		Available:    true,
		Sunrise:      optionalInstant(payload.Sun.Rise),
		Sunset:       optionalInstant(payload.Sun.Set),
		Moonrise:     optionalInstant(payload.Moon.Rise),
		Moonset:      optionalInstant(payload.Moon.Set),
		Civil:        payload.Twilight.Civil.band(),
		Nautical:     payload.Twilight.Nautical.band(),
		Astronomical: payload.Twilight.Astronomical.band(),
	}

	tz := weather.DefaultTimezone()
	if payload.Timezone == nil {
		log.Printf("INFO: providers: astro response for %s has no time zone; using %s", coord.Key(), tz.ID)
	} else {
		tz = weather.TimezoneInfo{
			RawOffsetSeconds: int(payload.Timezone.RawOffset),
			DSTOffsetSeconds: int(payload.Timezone.DSTOffset),
			ID:               payload.Timezone.TimeZoneID,
			Name:             payload.Timezone.TimeZoneName,
			Status:           weather.TimezoneResolved,
		}
	}
	return snapshot, tz, nil
}

type riseSetPayload struct {
	Rise *string `json:"rise"`
	Set  *string `json:"set"`
}

type bandPayload struct {
	Begin *string `json:"begin"`
	End   *string `json:"end"`
}

func (b bandPayload) band() weather.TwilightBand {
	return weather.TwilightBand{Begin: optionalInstant(b.Begin), End: optionalInstant(b.End)}
}

type astroPayload struct {
	Sun      riseSetPayload `json:"sun"`
	Moon     riseSetPayload `json:"moon"`
	Twilight struct {
		Civil        bandPayload `json:"civil"`
		Nautical     bandPayload `json:"nautical"`
		Astronomical bandPayload `json:"astronomical"`
	} `json:"twilight"`
	Timezone *struct {
		RawOffset    float64 `json:"rawOffset"`
		DSTOffset    float64 `json:"dstOffset"`
		TimeZoneID   string  `json:"timeZoneId"`
		TimeZoneName string  `json:"timeZoneName"`
	} `json:"timezone"`
}

// optionalInstant parses s; nil, empty or unparseable values mean "not applicable".
func optionalInstant(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	ts, err := parseTimestamp(*s)
	if err != nil {
		return nil
	}
	return &ts
}
