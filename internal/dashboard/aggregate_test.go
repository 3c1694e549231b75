package dashboard

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/DeliveryPulse/DP-Backend/internal/entries"
)

var testNow = time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

func entry(date string, challan, delivered, pending float64, required, confirmed, missing int) entries.DeliveryEntry {
	return entries.DeliveryEntry{
		ID:               "e-" + date,
		UserID:           "user-1",
		Date:             date,
		ChallanAmount:    challan,
		DeliveredAmount:  delivered,
		PendingAmount:    pending,
		VehicleRequired:  required,
		VehicleConfirmed: confirmed,
		VehicleMissing:   missing,
	}
}

func TestComputeSummary_Empty(t *testing.T) {
	s, err := ComputeSummary(nil, testNow)
	if err != nil {
		t.Fatalf("ComputeSummary: %v", err)
	}

	if s != (Summary{}) {
		t.Errorf("empty input must yield all zero values, got %+v", s)
	}
}

func TestComputeSummary_FieldSums(t *testing.T) {
	list := []entries.DeliveryEntry{
		entry("2025-06-18", 1000, 600, 400, 5, 4, 1),
		entry("2025-06-19", 500, 500, 0, 3, 3, 0),
	}

	s, err := ComputeSummary(list, testNow)
	if err != nil {
		t.Fatalf("ComputeSummary: %v", err)
	}

	if s.TotalChallanAmount != 1500 {
		t.Errorf("total_challan_amount = %v, want 1500", s.TotalChallanAmount)
	}
	if s.TotalDeliveredAmount != 1100 {
		t.Errorf("total_delivered_amount = %v, want 1100", s.TotalDeliveredAmount)
	}
	if s.TotalPendingAmount != 400 {
		t.Errorf("total_pending_amount = %v, want 400", s.TotalPendingAmount)
	}
	if s.TotalVehicleRequired != 8 || s.TotalVehicleConfirmed != 7 || s.TotalVehicleMissing != 1 {
		t.Errorf("vehicle sums = %d/%d/%d, want 8/7/1",
			s.TotalVehicleRequired, s.TotalVehicleConfirmed, s.TotalVehicleMissing)
	}
	// 1100/1500*100 ≈ 73.3
	if math.Abs(s.DeliveryRate-73.3333) > 0.01 {
		t.Errorf("delivery_rate = %v, want ≈73.33", s.DeliveryRate)
	}
}

func TestComputeSummary_ZeroDenominators(t *testing.T) {
	// vehicle_required is zero everywhere; confirmed values must not matter.
	list := []entries.DeliveryEntry{
		entry("2025-06-18", 0, 0, 0, 0, 7, 0),
		entry("2025-06-19", 0, 0, 0, 0, 2, 0),
	}

	s, err := ComputeSummary(list, testNow)
	if err != nil {
		t.Fatalf("ComputeSummary: %v", err)
	}
	if s.DeliveryRate != 0 {
		t.Errorf("delivery_rate = %v, want 0 when challan sum is 0", s.DeliveryRate)
	}
	if s.VehicleUtilizationRate != 0 {
		t.Errorf("vehicle_utilization_rate = %v, want 0 when required sum is 0", s.VehicleUtilizationRate)
	}
}

func TestComputeSummary_RecentWindow(t *testing.T) {
	list := []entries.DeliveryEntry{
		entry("2025-06-20", 1, 1, 0, 0, 0, 0), // today
		entry("2025-06-14", 1, 1, 0, 0, 0, 0), // oldest day still inside
		entry("2025-06-13", 1, 1, 0, 0, 0, 0), // just outside
		entry("2025-05-01", 1, 1, 0, 0, 0, 0), // far outside
	}

	s, err := ComputeSummary(list, testNow)
	if err != nil {
		t.Fatalf("ComputeSummary: %v", err)
	}
	if s.RecentEntriesCount != 2 {
		t.Errorf("recent_entries_count = %d, want 2", s.RecentEntriesCount)
	}
	// Sums still cover everything, window only affects the count.
	if s.TotalChallanAmount != 4 {
		t.Errorf("total_challan_amount = %v, want 4", s.TotalChallanAmount)
	}
}

func TestComputeSummary_RecentWindowNonUTCNow(t *testing.T) {
	// Early morning in a +05:30 zone is still the previous day on the UTC
	// timeline; today's entry must count regardless.
	ist := time.FixedZone("IST", 5*3600+30*60)
	now := time.Date(2025, 6, 20, 1, 0, 0, 0, ist)

	list := []entries.DeliveryEntry{
		entry("2025-06-20", 1, 1, 0, 0, 0, 0),
	}

	s, err := ComputeSummary(list, now)
	if err != nil {
		t.Fatalf("ComputeSummary: %v", err)
	}
	if s.RecentEntriesCount != 1 {
		t.Errorf("recent_entries_count = %d, want 1", s.RecentEntriesCount)
	}
}

func TestComputeSummary_Idempotent(t *testing.T) {
	list := []entries.DeliveryEntry{
		entry("2025-06-18", 1000, 600, 400, 5, 4, 1),
		entry("2025-06-19", 500, 500, 0, 3, 3, 0),
	}

	first, err := ComputeSummary(list, testNow)
	if err != nil {
		t.Fatalf("ComputeSummary: %v", err)
	}
	second, err := ComputeSummary(list, testNow)
	if err != nil {
		t.Fatalf("ComputeSummary: %v", err)
	}
	if first != second {
		t.Errorf("same snapshot must yield identical output: %+v vs %+v", first, second)
	}
}

func TestComputeSummary_MalformedDate(t *testing.T) {
	list := []entries.DeliveryEntry{entry("20/06/2025", 1, 1, 0, 0, 0, 0)}
	if _, err := ComputeSummary(list, testNow); err == nil {
		t.Fatal("expected error for malformed entry date")
	}
}

func TestComputeDailyTrend_GapsOmitted(t *testing.T) {
	// Entries on D1 and D3 only; D2 must not appear as a zero bucket.
	list := []entries.DeliveryEntry{
		entry("2025-06-10", 100, 50, 50, 2, 1, 1),
		entry("2025-06-12", 200, 200, 0, 1, 1, 0),
	}

	trend, err := ComputeDailyTrend(list, 30, testNow)
	if err != nil {
		t.Fatalf("ComputeDailyTrend: %v", err)
	}

	if len(trend) != 2 {
		t.Fatalf("expected exactly 2 buckets, got %d: %+v", len(trend), trend)
	}
	if trend[0].Date != "2025-06-10" || trend[1].Date != "2025-06-12" {
		t.Errorf("buckets must be ascending [D1, D3], got %+v", trend)
	}
}

func TestComputeDailyTrend_SumsPerDate(t *testing.T) {
	list := []entries.DeliveryEntry{
		entry("2025-06-10", 100, 50, 50, 2, 1, 1),
		{
			ID: "e-second", UserID: "user-2", Date: "2025-06-10",
			ChallanAmount: 300, DeliveredAmount: 250, PendingAmount: 50,
			VehicleRequired: 4, VehicleConfirmed: 3, VehicleMissing: 1,
		},
	}

	trend, err := ComputeDailyTrend(list, 30, testNow)
	if err != nil {
		t.Fatalf("ComputeDailyTrend: %v", err)
	}

	want := []TrendBucket{{
		Date:          "2025-06-10",
		ChallanAmount: 400, DeliveredAmount: 300, PendingAmount: 100,
		VehicleRequired: 6, VehicleConfirmed: 4, VehicleMissing: 2,
	}}
	if !reflect.DeepEqual(trend, want) {
		t.Errorf("trend = %+v, want %+v", trend, want)
	}
}

func TestComputeDailyTrend_WindowRestriction(t *testing.T) {
	list := []entries.DeliveryEntry{
		entry("2025-06-19", 100, 100, 0, 0, 0, 0),
		entry("2025-04-01", 999, 999, 0, 0, 0, 0), // well outside 30 days
	}

	trend, err := ComputeDailyTrend(list, 30, testNow)
	if err != nil {
		t.Fatalf("ComputeDailyTrend: %v", err)
	}
	if len(trend) != 1 || trend[0].Date != "2025-06-19" {
		t.Errorf("only the in-window date should survive, got %+v", trend)
	}
}

func TestComputeDailyTrend_NonUTCNow(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+30*60)
	now := time.Date(2025, 6, 20, 1, 0, 0, 0, ist)

	list := []entries.DeliveryEntry{
		entry("2025-06-20", 100, 100, 0, 0, 0, 0),
	}

	trend, err := ComputeDailyTrend(list, 30, now)
	if err != nil {
		t.Fatalf("ComputeDailyTrend: %v", err)
	}
	if len(trend) != 1 || trend[0].Date != "2025-06-20" {
		t.Errorf("today's entry must stay in the window, got %+v", trend)
	}
}

func TestComputeDailyTrend_EmptyInput(t *testing.T) {
	trend, err := ComputeDailyTrend(nil, 30, testNow)
	if err != nil {
		t.Fatalf("ComputeDailyTrend: %v", err)
	}
	if len(trend) != 0 {
		t.Errorf("expected no buckets, got %+v", trend)
	}
}
