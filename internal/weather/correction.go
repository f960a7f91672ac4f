package weather

import "time"

const (
	correctionSlots  = 24 // hourly cadence assumed
	correctionWindow = 24 * time.Hour
	kelvinOffset     = 273.15
)

// ComputeCorrection averages surface pressure and 2 m temperature over the
// first 24 slots whose forecast time lies within 24 hours of now.
// It returns nil when no slot qualifies.
func ComputeCorrection(series ForecastSeries, now time.Time) *CorrectionParameters {
	slots := series.Slots
	if len(slots) > correctionSlots {
		slots = slots[:correctionSlots]
	}

	var (
		sumPressure float64
		sumTemp     float64
		n           int
	)
	for _, s := range slots {
		d := s.ForecastTime.Sub(now)
		if d < 0 {
			d = -d
		}
		if d > correctionWindow {
			continue
		}
		sumPressure += s.SurfacePressure
		sumTemp += s.Temperature2m + kelvinOffset
		n++
	}

	if n == 0 {
		return nil
	}
	return &CorrectionParameters{
		AveragePressurePa:        sumPressure / float64(n),
		AverageTemperatureKelvin: sumTemp / float64(n),
	}
}
