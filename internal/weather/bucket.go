package weather

import "sort"

// SortSlots orders slots by forecast time, keeping the upstream order of
// slots that share a timestamp.
func SortSlots(slots []ForecastSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].ForecastTime.Before(slots[j].ForecastTime)
	})
}

// Bucket groups normalized slots by local calendar date and keeps at most
// maxDays days. Slots past the last kept day are dropped.
func Bucket(slots []ForecastSlot, maxDays int) []LocalDay {
	if maxDays <= 0 || len(slots) == 0 {
		return nil
	}

	sorted := make([]ForecastSlot, len(slots))
	copy(sorted, slots)
	SortSlots(sorted)

	// Never more days than slots, whatever maxDays says.
	days := make([]LocalDay, 0, min(maxDays, len(sorted)))
	for _, s := range sorted {
		y, m, d := s.LocalForecastTime.Time().Date()

		if n := len(days); n > 0 {
			cur := &days[n-1]
			if cur.Year == y && cur.Month == m && cur.Day == d {
				cur.Slots = append(cur.Slots, s)
				continue
			}
		}

		if len(days) == maxDays {
			break
		}
		days = append(days, LocalDay{Year: y, Month: m, Day: d, Slots: []ForecastSlot{s}})
	}
	return days
}
