package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-report/internal/weather"
)

type stubService struct {
	gotCoord weather.Coordinate
	gotDays  int
}

func (s *stubService) Report(ctx context.Context, coord weather.Coordinate, maxDays int) (weather.Report, error) {
	s.gotCoord, s.gotDays = coord, maxDays
	return weather.Report{Text: "<strong>2024-05-01</strong>"}, nil
}

func (s *stubService) Prepare(ctx context.Context, coord weather.Coordinate, maxDays int) (weather.ReportInput, error) {
	return weather.ReportInput{}, nil
}

func TestReportCommand(t *testing.T) {
	svc := &stubService{}
	cmd := New(Deps{Service: svc})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"report", "--lat", "30.0444", "--lng", "31.2357", "--days", "2"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, weather.Coordinate{Lat: 30.0444, Lng: 31.2357}, svc.gotCoord)
	assert.Equal(t, 2, svc.gotDays)
	assert.Equal(t, "<strong>2024-05-01</strong>\n", out.String())
}

func TestReportCommandRequiresCoordinate(t *testing.T) {
	cmd := New(Deps{Service: &stubService{}})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"report", "--lat", "30"})

	assert.Error(t, cmd.Execute())
}
