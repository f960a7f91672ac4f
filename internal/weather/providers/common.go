package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const userAgent = "weather-report/1.0"

// HTTPClientConfig bundles the HTTP client and the limiter shared by the feeds.
type HTTPClientConfig struct {
	Client  *resty.Client
	Limiter *rate.Limiter // optional
}

// NewHTTPClientConfig builds a client with a finite timeout and, when rps
// is positive, a client-side rate limit.
func NewHTTPClientConfig(timeout time.Duration, rps float64, burst int) HTTPClientConfig {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)

	cfg := HTTPClientConfig{Client: client}
	if rps > 0 {
		if burst <= 0 {
			burst = 1
		}
		cfg.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return cfg
}

var (
	errRateLimited  = errors.New("rate limited")
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         name,
		MaxRequests:  5,
		Interval:     1 * time.Minute,
		Timeout:      2 * time.Minute,
		IsSuccessful: countsAsHealthy,
	})
}

// countsAsHealthy reports whether a request outcome leaves the breaker's
// failure count alone. 4xx responses and canceled callers do; transport
// errors, 5xx and 429 do not.
func countsAsHealthy(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, errUnexpected), errors.Is(err, context.Canceled):
		return true
	default:
		return false
	}
}

// feedURL joins base and the coordinate path segments.
func feedURL(base string, lat, lng float64) string {
	return fmt.Sprintf("%s/%f/%f/", strings.TrimRight(base, "/"), lat, lng)
}

// doRequest performs a single GET (no retries) through the rate limiter and
// the circuit breaker and returns the response body.
func doRequest(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	url string,
	query map[string]string,
) ([]byte, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}

	if cfg.Limiter != nil {
		if err := cfg.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait canceled: %w", err)
		}
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := cfg.Client.R().
			SetContext(ctx).
			SetQueryParams(query).
			Get(url)
		if execErr != nil {
			return nil, execErr
		}

		switch {
		case resp.StatusCode() == http.StatusTooManyRequests:
			return nil, errRateLimited
		case resp.StatusCode() >= 500:
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode())
		case !resp.IsSuccess():
			return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode())
		}
		return resp.Body(), nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return body, nil
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// parseTimestamp parses an ISO-8601 instant; zone-less values are UTC.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
