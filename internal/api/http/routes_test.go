package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-report/internal/locale"
	"github.com/i474232898/weather-report/internal/report"
	"github.com/i474232898/weather-report/internal/weather"
	"github.com/i474232898/weather-report/internal/weather/providers"
)

var testNow = time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)

type stubForecasts struct {
	err error
}

func (s stubForecasts) FetchForecast(ctx context.Context, coord weather.Coordinate) (weather.ForecastSeries, error) {
	if s.err != nil {
		return weather.ForecastSeries{}, s.err
	}
	slots := make([]weather.ForecastSlot, 72)
	for i := range slots {
		slots[i] = weather.ForecastSlot{
			ForecastTime:    testNow.Add(time.Duration(i) * time.Hour),
			RunTime:         testNow,
			Temperature2m:   12,
			SurfacePressure: 100000,
			CloudCoverPct:   50,
		}
	}
	return weather.ForecastSeries{
		Slots:    slots,
		Metadata: weather.QueryMetadata{Query: coord, Forecast: coord, Count: len(slots)},
	}, nil
}

type stubAstro struct{}

func (stubAstro) FetchAstro(ctx context.Context, coord weather.Coordinate, c *weather.CorrectionParameters) (weather.AstroSnapshot, weather.TimezoneInfo) {
	return weather.NoAstroData(), weather.DefaultTimezone()
}

func newTestService(err error) *weather.Service {
	return weather.NewService(stubForecasts{err: err}, stubAstro{}, report.New(locale.English()), 3,
		weather.WithClock(func() time.Time { return testNow }))
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestReportEndpoint(t *testing.T) {
	app := NewApp(newTestService(nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/report?lat=48.1374&lng=11.5755&days=2", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, report.ParseModeHTML, body["parseMode"])
	text, _ := body["text"].(string)
	assert.Contains(t, text, "Location: 48.1374, 11.5755")
	assert.Contains(t, text, "<strong>2024-05-02</strong>")
	assert.NotContains(t, text, "<strong>2024-05-03</strong>")
}

func TestReportValidation(t *testing.T) {
	app := NewApp(newTestService(nil))

	for _, target := range []string{
		"/api/v1/report",
		"/api/v1/report?lat=48.1&lng=",
		"/api/v1/report?lat=91&lng=11",
		"/api/v1/report?lat=48&lng=181",
		"/api/v1/report?lat=48&lng=11&days=8",
		"/api/v1/report?lat=48&lng=11&days=0",
		"/api/v1/report?lat=48&lng=11&days=two",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)

		body := decodeBody(t, resp)
		assert.Equal(t, true, body["error"], target)
	}
}

func TestReportUpstreamFailure(t *testing.T) {
	app := NewApp(newTestService(weather.ErrDataUnavailable))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/report?lat=48&lng=11", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestChartEndpoint(t *testing.T) {
	app := NewApp(newTestService(nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/report/chart?lat=48&lng=11", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "echarts")
}

func TestHealth(t *testing.T) {
	app := NewApp(newTestService(nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeBody(t, resp)["status"])
}

var dayHeader = regexp.MustCompile(`(?m)^<strong>(\d{4}-\d{2}-\d{2})</strong>$`)

// forecastFeed serves n hourly slots starting at start in the NWP wire format.
func forecastFeed(start time.Time, n int) string {
	members := []string{`"metadata": {"queryCoordinates": {"lat": 30.0444, "lng": 31.2357},
		"forecastCoordinates": {"lat": 30.0625, "lng": 31.25}, "count": ` + fmt.Sprint(n) + `}`}
	for i := 0; i < n; i++ {
		ts := start.Add(time.Duration(i) * time.Hour).Format(time.RFC3339)
		members = append(members, fmt.Sprintf(
			`%q: {"forecast": %q, "runtime": %q, "t_2m": 21.5, "p_surface": 100800, "clct": 30, "vmax_10m": 4.2, "ww": 0}`,
			ts, ts, start.Format(time.RFC3339)))
	}
	return "{" + strings.Join(members, ",") + "}"
}

const cairoAstro = `{
	"sun": {"rise": "2024-05-02T02:05:00Z", "set": "2024-05-02T15:40:00Z"},
	"moon": {"rise": null, "set": "2024-05-02T10:10:00Z"},
	"twilight": {
		"civil": {"begin": "2024-05-02T01:38:00Z", "end": "2024-05-02T16:07:00Z"},
		"nautical": {"begin": "2024-05-02T01:06:00Z", "end": "2024-05-02T16:39:00Z"},
		"astronomical": {"begin": "2024-05-02T00:33:00Z", "end": "2024-05-02T17:12:00Z"}
	},
	"timezone": {"rawOffset": 7200, "dstOffset": 0, "timeZoneId": "Africa/Cairo", "timeZoneName": "Eastern European Time"}
}`

func TestReportEndpointAgainstFeeds(t *testing.T) {
	// Local midnight at UTC+02:00.
	start := time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC)

	nwpSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(forecastFeed(start, 48)))
	}))
	defer nwpSrv.Close()

	var astroQuery string
	astroSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		astroQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(cairoAstro))
	}))
	defer astroSrv.Close()

	httpCfg := providers.NewHTTPClientConfig(2*time.Second, 0, 0)
	svc := weather.NewService(
		providers.NewNWPProvider(httpCfg, nwpSrv.URL),
		providers.NewAstroProvider(httpCfg, astroSrv.URL),
		report.New(locale.English(), "nwp.example.com"),
		3,
		weather.WithClock(func() time.Time { return start }),
	)
	app := NewApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/report?lat=30.0444&lng=31.2357", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	text, _ := decodeBody(t, resp)["text"].(string)

	var dates []string
	for _, m := range dayHeader.FindAllStringSubmatch(text, -1) {
		dates = append(dates, m[1])
	}
	assert.Equal(t, []string{"2024-05-02", "2024-05-03"}, dates)
	assert.Contains(t, text, "Grid point: 30.0625, 31.2500 (48 slots)\n")
	assert.Contains(t, text, "Time zone: Africa/Cairo (Eastern European Time) UTC+02:00, DST: no\n")
	assert.Contains(t, text, "Sunrise 04:05, Sunset 17:40\n")
	assert.Contains(t, text, "<strong>2024-05-02</strong>\n00:00 21.5°C, clear, gentle breeze\n")
	assert.Contains(t, text, "Generated at: 2024-05-02 00:00:00 UTC+02:00\n")
	assert.Contains(t, text, "Sources: nwp.example.com\n")

	assert.Contains(t, astroQuery, "pressure=100800.0")
	assert.Contains(t, astroQuery, "temperature=294.65")
}
