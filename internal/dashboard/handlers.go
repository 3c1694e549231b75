package dashboard

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/DeliveryPulse/DP-Backend/internal/auth"
	"github.com/DeliveryPulse/DP-Backend/internal/db"
	"github.com/DeliveryPulse/DP-Backend/internal/entries"
)

// fetchScoped loads the caller's visible entries. Admins aggregate over all
// entries, everyone else over their own — derived from the stored role, not
// from anything in the request.
func fetchScoped(r *http.Request) ([]entries.DeliveryEntry, error) {
	user, err := auth.CurrentUser(r)
	if err != nil {
		return nil, err
	}

	var list []entries.DeliveryEntry
	scope := entries.ScopeFor(user)
	if err := scope.Apply(db.DB.Model(&entries.DeliveryEntry{})).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// writeFetchError distinguishes a vanished caller (user row deleted after the
// session passed middleware) from a storage failure.
func writeFetchError(w http.ResponseWriter, err error) {
	if errors.Is(err, auth.ErrUnauthenticated) {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	http.Error(w, "Failed to fetch entries", http.StatusInternalServerError)
}

// SummaryHandler returns the KPI rollup for the caller's scope.
func SummaryHandler(w http.ResponseWriter, r *http.Request) {
	list, err := fetchScoped(r)
	if err != nil {
		writeFetchError(w, err)
		return
	}

	summary, err := ComputeSummary(list, time.Now())
	if err != nil {
		log.Printf("[dashboard] summary: %v", err)
		http.Error(w, "Failed to compute summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// ChartDataHandler returns the trailing-30-day daily trend. Dates without
// entries are absent from the series.
func ChartDataHandler(w http.ResponseWriter, r *http.Request) {
	list, err := fetchScoped(r)
	if err != nil {
		writeFetchError(w, err)
		return
	}

	trend, err := ComputeDailyTrend(list, DefaultTrendWindowDays, time.Now())
	if err != nil {
		log.Printf("[dashboard] trend: %v", err)
		http.Error(w, "Failed to compute trend", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"daily_trend": trend,
	})
}
