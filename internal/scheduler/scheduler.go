package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-report/internal/dispatch"
	"github.com/i474232898/weather-report/internal/weather"
)

// Reporter produces a rendered report for one coordinate.
type Reporter interface {
	Report(ctx context.Context, coord weather.Coordinate, maxDays int) (weather.Report, error)
}

// Submitter accepts rendered reports for delivery.
type Submitter interface {
	Submit(msg dispatch.Message) error
}

// Scheduler periodically builds reports for subscribed coordinates and hands
// them to the dispatch queue.
type Scheduler struct {
	scheduler     *gocron.Scheduler
	reporter      Reporter
	out           Submitter
	subscriptions []weather.Coordinate
	interval      time.Duration
	maxDays       int
}

// New creates a new Scheduler.
func New(subscriptions []weather.Coordinate, interval time.Duration, maxDays int, reporter Reporter, out Submitter) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler:     s,
		reporter:      reporter,
		out:           out,
		subscriptions: subscriptions,
		interval:      interval,
		maxDays:       maxDays,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.subscriptions) == 0 {
		log.Println("INFO: scheduler: no subscriptions configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce builds one report per subscription concurrently.
func (s *Scheduler) RunOnce() {
	log.Println("INFO: scheduler: running report job")

	var wg sync.WaitGroup
	for _, coord := range s.subscriptions {
		coord := coord
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			rep, err := s.reporter.Report(ctx, coord, s.maxDays)
			if err != nil {
				log.Printf("ERROR: scheduler: report failed for %s: %v", coord.Key(), err)
				return
			}
			if err := s.out.Submit(dispatch.Message{Recipient: coord.Key(), Report: rep}); err != nil {
				log.Printf("ERROR: scheduler: submit failed for %s: %v", coord.Key(), err)
			}
		}()
	}
	wg.Wait()
	log.Println("INFO: scheduler: completed report job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
