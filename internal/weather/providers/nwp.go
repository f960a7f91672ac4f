package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/i474232898/weather-report/internal/weather"
	"github.com/sony/gobreaker"
)

const metadataKey = "metadata"

// NWPProvider implements weather.ForecastSource for the NWP forecast feed.
type NWPProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

var _ weather.ForecastSource = (*NWPProvider)(nil)

func NewNWPProvider(cfg HTTPClientConfig, baseURL string) *NWPProvider {
	return &NWPProvider{
		name:    "nwp",
		baseURL: baseURL,
		httpCfg: cfg,
		circuit: newCircuitBreaker("nwp"),
	}
}

func (p *NWPProvider) Name() string {
	return p.name
}

// FetchForecast fetches and decodes the forecast series for coord. Every
// failure wraps weather.ErrDataUnavailable.
func (p *NWPProvider) FetchForecast(ctx context.Context, coord weather.Coordinate) (weather.ForecastSeries, error) {
	body, err := doRequest(ctx, p.httpCfg, p.circuit, feedURL(p.baseURL, coord.Lat, coord.Lng), nil)
	if err != nil {
		return weather.ForecastSeries{}, fmt.Errorf("%w: %s: %v", weather.ErrDataUnavailable, p.name, err)
	}

	series, err := decodeForecast(body, coord)
	if err != nil {
		return weather.ForecastSeries{}, fmt.Errorf("%w: %s: %v", weather.ErrDataUnavailable, p.name, err)
	}
	return series, nil
}

type coordPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type metadataPayload struct {
	QueryCoordinates    *coordPayload `json:"queryCoordinates"`
	ForecastCoordinates *coordPayload `json:"forecastCoordinates"`
	Count               int           `json:"count"`
}

type slotPayload struct {
	Forecast string       `json:"forecast"`
	Runtime  string       `json:"runtime"`
	T2m      float64      `json:"t_2m"`
	PSurface float64      `json:"p_surface"`
	Clct     float64      `json:"clct"`
	Vmax10m  lenientFloat `json:"vmax_10m"`
	WW       lenientInt   `json:"ww"`
}

// lenientFloat decodes a number and treats null or any other JSON type as unknown.
type lenientFloat struct {
	v *float64
}

func (f *lenientFloat) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		f.v = &v
	}
	return nil
}

// lenientInt accepts integral numbers (including 26.0); anything else is unknown.
type lenientInt struct {
	v *int
}

func (i *lenientInt) UnmarshalJSON(b []byte) error {
	var f lenientFloat
	_ = f.UnmarshalJSON(b)
	if f.v == nil || *f.v != math.Trunc(*f.v) {
		return nil
	}
	n := int(*f.v)
	i.v = &n
	return nil
}

func decodeForecast(body []byte, coord weather.Coordinate) (weather.ForecastSeries, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return weather.ForecastSeries{}, fmt.Errorf("failed to parse forecast response: %w", err)
	}

	meta := weather.QueryMetadata{Query: coord, Forecast: coord}
	if m, ok := raw[metadataKey]; ok {
		delete(raw, metadataKey)
		var mp metadataPayload
		if err := json.Unmarshal(m, &mp); err != nil {
			log.Printf("INFO: providers: ignoring malformed forecast metadata: %v", err)
		} else {
			if mp.QueryCoordinates != nil {
				meta.Query = weather.Coordinate{Lat: mp.QueryCoordinates.Lat, Lng: mp.QueryCoordinates.Lng}
			}
			if mp.ForecastCoordinates != nil {
				meta.Forecast = weather.Coordinate{Lat: mp.ForecastCoordinates.Lat, Lng: mp.ForecastCoordinates.Lng}
			}
			meta.Count = mp.Count
		}
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	slots := make([]weather.ForecastSlot, 0, len(keys))
	for _, k := range keys {
		var sp slotPayload
		if err := json.Unmarshal(raw[k], &sp); err != nil {
			log.Printf("INFO: providers: skipping forecast slot %q: %v", k, err)
			continue
		}
		ft, err := parseTimestamp(sp.Forecast)
		if err != nil {
			log.Printf("INFO: providers: skipping forecast slot %q: bad forecast time: %v", k, err)
			continue
		}
		rt, err := parseTimestamp(sp.Runtime)
		if err != nil {
			log.Printf("INFO: providers: skipping forecast slot %q: bad run time: %v", k, err)
			continue
		}

		slots = append(slots, weather.ForecastSlot{
			ForecastTime:    ft,
			RunTime:         rt,
			Temperature2m:   sp.T2m,
			SurfacePressure: sp.PSurface,
			CloudCoverPct:   sp.Clct,
			MaxWind10m:      sp.Vmax10m.v,
			WeatherCode:     sp.WW.v,
		})
	}
	weather.SortSlots(slots)

	if meta.Count == 0 {
		meta.Count = len(slots)
	}
	return weather.ForecastSeries{Slots: slots, Metadata: meta}, nil
}
