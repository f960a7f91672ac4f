package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/weather-report/internal/weather"
)

var validate = validator.New()

type AppConfig struct {
	NWPBaseURL   string `validate:"required,url"`
	AstroBaseURL string `validate:"required,url"`

	// HTTPTimeout bounds each upstream fetch.
	HTTPTimeout   time.Duration `validate:"gt=0"`
	UpstreamRPS   float64       `validate:"gt=0"`
	UpstreamBurst int           `validate:"gte=1"`

	MaxDays    int    `validate:"gte=1,lte=7"`
	Locale     string `validate:"required"`
	LocaleFile string

	Port string `validate:"required,numeric"`

	// ScheduleInterval of 0 disables scheduled reports.
	ScheduleInterval time.Duration        `validate:"gte=0"`
	Subscriptions    []weather.Coordinate `validate:"dive"`

	DispatchWorkers int    `validate:"gte=1"`
	WebhookURL      string `validate:"omitempty,url"`

	GeocoderAPIKey string

	// Sources is the attribution listed in the report footer.
	Sources []string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{
		NWPBaseURL:      strings.TrimRight(getenvDefault("NWP_BASE_URL", "http://localhost:8081/forecast"), "/"),
		AstroBaseURL:    strings.TrimRight(getenvDefault("ASTRO_BASE_URL", "http://localhost:8082/astro"), "/"),
		UpstreamRPS:     getenvFloat("UPSTREAM_RPS", 5),
		UpstreamBurst:   getenvInt("UPSTREAM_BURST", 5),
		MaxDays:         getenvInt("MAX_DAYS", 3),
		Locale:          getenvDefault("LOCALE", "zh"),
		LocaleFile:      os.Getenv("LOCALE_FILE"),
		Port:            getenvDefault("PORT", "8080"),
		DispatchWorkers: getenvInt("DISPATCH_WORKERS", 5),
		WebhookURL:      os.Getenv("WEBHOOK_URL"),
		GeocoderAPIKey:  os.Getenv("GEOCODER_API_KEY"),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.ScheduleInterval, err = getenvDuration("SCHEDULE_INTERVAL", "0"); err != nil {
		return nil, err
	}

	cfg.Sources = parseSources(os.Getenv("SOURCES"), cfg.NWPBaseURL, cfg.AstroBaseURL)

	subs, err := ParseSubscriptions(os.Getenv("SUBSCRIPTIONS"))
	if err != nil {
		return nil, err
	}
	cfg.Subscriptions = subs

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ParseSubscriptions parses "lat,lng;lat,lng". Empty entries are ignored.
func ParseSubscriptions(raw string) ([]weather.Coordinate, error) {
	var coords []weather.Coordinate
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid SUBSCRIPTIONS entry %q: want lat,lng", entry)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SUBSCRIPTIONS latitude %q: %w", parts[0], err)
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SUBSCRIPTIONS longitude %q: %w", parts[1], err)
		}
		coords = append(coords, weather.Coordinate{Lat: lat, Lng: lng})
	}
	return coords, nil
}

// parseSources splits a ";"-separated attribution list. When raw is empty
// the hosts of the feed URLs are used.
func parseSources(raw string, feedURLs ...string) []string {
	var sources []string
	for _, s := range strings.Split(raw, ";") {
		if s = strings.TrimSpace(s); s != "" {
			sources = append(sources, s)
		}
	}
	if len(sources) > 0 {
		return sources
	}

	for _, feed := range feedURLs {
		u, err := url.Parse(feed)
		if err != nil || u.Host == "" {
			continue
		}
		if !slices.Contains(sources, u.Host) {
			sources = append(sources, u.Host)
		}
	}
	return sources
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
