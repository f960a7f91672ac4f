package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-report/internal/report"
	"github.com/i474232898/weather-report/internal/weather"
)

var validate = validator.New()

// ReportService is the part of weather.Service the handlers need.
type ReportService interface {
	Report(ctx context.Context, coord weather.Coordinate, maxDays int) (weather.Report, error)
	Prepare(ctx context.Context, coord weather.Coordinate, maxDays int) (weather.ReportInput, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service ReportService) {
	v1 := app.Group("/api/v1")

	v1.Get("/report", func(c *fiber.Ctx) error {
		q, err := parseReportQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rep, err := service.Report(c.UserContext(), q.coordinate(), q.days())
		if err != nil {
			return serviceError(err)
		}

		return c.JSON(fiber.Map{
			"id":        rep.ID,
			"text":      rep.Text,
			"parseMode": rep.ParseMode,
		})
	})

	v1.Get("/report/chart", func(c *fiber.Ctx) error {
		q, err := parseReportQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		in, err := service.Prepare(c.UserContext(), q.coordinate(), q.days())
		if err != nil {
			return serviceError(err)
		}

		c.Type("html", "utf-8")
		return report.RenderChart(c.Response().BodyWriter(), in)
	})
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

func serviceError(err error) error {
	switch {
	case errors.Is(err, weather.ErrInvalidCoordinate):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrDataUnavailable):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build report")
	}
}

// reportQuery holds query parameters for the report endpoints.
type reportQuery struct {
	Lat  string `validate:"required,latitude"`
	Lng  string `validate:"required,longitude"`
	Days *int   `validate:"omitempty,min=1,max=7"`
}

func parseReportQuery(c *fiber.Ctx) (reportQuery, error) {
	q := reportQuery{
		Lat: c.Query("lat"),
		Lng: c.Query("lng"),
	}
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, errors.New("days must be an integer")
		}
		q.Days = &n
	}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func (q reportQuery) coordinate() weather.Coordinate {
	// Both values passed the latitude/longitude validators.
	lat, _ := strconv.ParseFloat(q.Lat, 64)
	lng, _ := strconv.ParseFloat(q.Lng, 64)
	return weather.Coordinate{Lat: lat, Lng: lng}
}

// days returns 0 when unset so the service default applies.
func (q reportQuery) days() int {
	if q.Days == nil {
		return 0
	}
	return *q.Days
}
