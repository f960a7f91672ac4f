package main

import (
	"log"

	"github.com/i474232898/weather-report/internal/cli"
	"github.com/i474232898/weather-report/internal/config"
	"github.com/i474232898/weather-report/internal/dispatch"
	"github.com/i474232898/weather-report/internal/locale"
	"github.com/i474232898/weather-report/internal/report"
	"github.com/i474232898/weather-report/internal/weather"
	"github.com/i474232898/weather-report/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("ERROR: failed to load config: %v", err)
	}

	tables, err := loadTables(cfg)
	if err != nil {
		log.Fatalf("ERROR: failed to load locale tables: %v", err)
	}

	// One client and limiter shared by both feeds.
	httpCfg := providers.NewHTTPClientConfig(cfg.HTTPTimeout, cfg.UpstreamRPS, cfg.UpstreamBurst)
	nwp := providers.NewNWPProvider(httpCfg, cfg.NWPBaseURL)
	astro := providers.NewAstroProvider(httpCfg, cfg.AstroBaseURL)

	var opts []weather.Option
	if cfg.GeocoderAPIKey != "" {
		opts = append(opts, weather.WithPlaceResolver(providers.NewGeocoderPlaceResolver(cfg.GeocoderAPIKey)))
	}

	renderer := report.New(tables, cfg.Sources...)
	service := weather.NewService(nwp, astro, renderer, cfg.MaxDays, opts...)

	var sender dispatch.Sender = dispatch.LogSender{}
	if cfg.WebhookURL != "" {
		sender = dispatch.NewWebhookSender(cfg.WebhookURL, cfg.HTTPTimeout)
	}

	cmd := cli.New(cli.Deps{Config: cfg, Service: service, Sender: sender})
	if err := cmd.Execute(); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

func loadTables(cfg *config.AppConfig) (*locale.Tables, error) {
	if cfg.LocaleFile != "" {
		return locale.LoadFile(cfg.LocaleFile)
	}
	return locale.Lookup(cfg.Locale)
}
