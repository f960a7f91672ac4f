package cli

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/weather-report/internal/api/http"
	"github.com/i474232898/weather-report/internal/config"
	"github.com/i474232898/weather-report/internal/dispatch"
	"github.com/i474232898/weather-report/internal/scheduler"
	"github.com/i474232898/weather-report/internal/weather"
)

// Deps is everything the commands need, built once by main.
type Deps struct {
	Config  *config.AppConfig
	Service httpapi.ReportService
	Sender  dispatch.Sender
}

func New(deps Deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "weather-report",
		Short:         "Multi-day weather and astronomy reports for a coordinate",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newReportCommand(deps), newServeCommand(deps))
	return root
}

func newReportCommand(deps Deps) *cobra.Command {
	var (
		lat, lng float64
		days     int
	)
	cmd := &cobra.Command{
		Use:   "report",
		Args:  cobra.NoArgs,
		Short: "Print a report for one coordinate",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := deps.Service.Report(cmd.Context(), weather.Coordinate{Lat: lat, Lng: lng}, days)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rep.Text)
			return nil
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in degrees")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude in degrees")
	cmd.Flags().IntVar(&days, "days", 0, "number of local days (default from MAX_DAYS)")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	return cmd
}

func newServeCommand(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Args:  cobra.NoArgs,
		Short: "Run the HTTP API and scheduled reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), deps)
		},
	}
}

func serve(ctx context.Context, deps Deps) error {
	cfg := deps.Config

	queue := dispatch.NewQueue(deps.Sender, cfg.DispatchWorkers*2, cfg.HTTPTimeout)
	queue.StartWorkers(cfg.DispatchWorkers)
	defer queue.Close()

	if cfg.ScheduleInterval > 0 {
		sched := scheduler.New(cfg.Subscriptions, cfg.ScheduleInterval, cfg.MaxDays, deps.Service, queue)
		if err := sched.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer sched.Stop()
	}

	app := httpapi.NewApp(deps.Service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("INFO: fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("ERROR: error during shutdown: %v", err)
	}
	return nil
}
