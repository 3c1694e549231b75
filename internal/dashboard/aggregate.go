package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/DeliveryPulse/DP-Backend/internal/entries"
)

// Summary is the KPI rollup for a set of already-scoped entries. The JSON
// keys are a stable contract with dashboard consumers.
type Summary struct {
	TotalChallanAmount     float64 `json:"total_challan_amount"`
	TotalDeliveredAmount   float64 `json:"total_delivered_amount"`
	TotalPendingAmount     float64 `json:"total_pending_amount"`
	TotalVehicleRequired   int     `json:"total_vehicle_required"`
	TotalVehicleConfirmed  int     `json:"total_vehicle_confirmed"`
	TotalVehicleMissing    int     `json:"total_vehicle_missing"`
	DeliveryRate           float64 `json:"delivery_rate"`
	VehicleUtilizationRate float64 `json:"vehicle_utilization_rate"`
	RecentEntriesCount     int     `json:"recent_entries_count"`
}

// TrendBucket is one calendar date's sums within the trend window.
type TrendBucket struct {
	Date             string  `json:"date"`
	ChallanAmount    float64 `json:"challan_amount"`
	DeliveredAmount  float64 `json:"delivered_amount"`
	PendingAmount    float64 `json:"pending_amount"`
	VehicleRequired  int     `json:"vehicle_required"`
	VehicleConfirmed int     `json:"vehicle_confirmed"`
	VehicleMissing   int     `json:"vehicle_missing"`
}

// DefaultTrendWindowDays is the trailing window for the daily trend.
const DefaultTrendWindowDays = 30

const recentWindowDays = 7

// inTrailingWindow reports whether day falls within the window of `days`
// calendar days ending at (and including) the date of now. The end bucket is
// built from now's calendar components, not a 24h truncation: truncating
// operates on the UTC timeline and drifts a day when now carries a non-UTC
// offset, while entry dates always parse to UTC midnight.
func inTrailingWindow(day, now time.Time, days int) bool {
	y, m, d := now.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -(days - 1))
	return !day.Before(start) && !day.After(end)
}

// ComputeSummary is a pure function of its input snapshot: identical entries
// yield identical output, and an empty slice yields all additive identities.
// A malformed entry date is a caller contract violation and returns an error.
func ComputeSummary(list []entries.DeliveryEntry, now time.Time) (Summary, error) {
	var s Summary

	for _, e := range list {
		day, err := time.Parse(entries.DateLayout, e.Date)
		if err != nil {
			return Summary{}, fmt.Errorf("entry %s has malformed date %q: %w", e.ID, e.Date, err)
		}

		s.TotalChallanAmount += e.ChallanAmount
		s.TotalDeliveredAmount += e.DeliveredAmount
		s.TotalPendingAmount += e.PendingAmount
		s.TotalVehicleRequired += e.VehicleRequired
		s.TotalVehicleConfirmed += e.VehicleConfirmed
		s.TotalVehicleMissing += e.VehicleMissing

		if inTrailingWindow(day, now, recentWindowDays) {
			s.RecentEntriesCount++
		}
	}

	if s.TotalChallanAmount > 0 {
		s.DeliveryRate = s.TotalDeliveredAmount / s.TotalChallanAmount * 100
	}
	if s.TotalVehicleRequired > 0 {
		s.VehicleUtilizationRate = float64(s.TotalVehicleConfirmed) / float64(s.TotalVehicleRequired) * 100
	}

	return s, nil
}

// ComputeDailyTrend groups entries by calendar date within the trailing
// window and emits buckets in ascending date order. Dates with no entries
// are omitted, not zero-filled: callers that render a continuous axis must
// interpolate the gaps themselves.
func ComputeDailyTrend(list []entries.DeliveryEntry, windowDays int, now time.Time) ([]TrendBucket, error) {
	if windowDays <= 0 {
		windowDays = DefaultTrendWindowDays
	}

	buckets := make(map[string]*TrendBucket)
	for _, e := range list {
		day, err := time.Parse(entries.DateLayout, e.Date)
		if err != nil {
			return nil, fmt.Errorf("entry %s has malformed date %q: %w", e.ID, e.Date, err)
		}
		if !inTrailingWindow(day, now, windowDays) {
			continue
		}

		b, ok := buckets[e.Date]
		if !ok {
			b = &TrendBucket{Date: e.Date}
			buckets[e.Date] = b
		}
		b.ChallanAmount += e.ChallanAmount
		b.DeliveredAmount += e.DeliveredAmount
		b.PendingAmount += e.PendingAmount
		b.VehicleRequired += e.VehicleRequired
		b.VehicleConfirmed += e.VehicleConfirmed
		b.VehicleMissing += e.VehicleMissing
	}

	out := make([]TrendBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	// ISO dates sort chronologically as strings.
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })

	return out, nil
}
