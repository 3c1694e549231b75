package entries

import (
	"net/http"

	"github.com/DeliveryPulse/DP-Backend/internal/auth"
	"github.com/DeliveryPulse/DP-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(rl *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Use(middleware.SessionMiddleware(sessionFetcher))
	r.Use(rl.GeneralMiddleware())

	r.Post("/", CreateEntryHandler)
	r.Get("/", ListEntriesHandler)
	r.Get("/{entry_id}", GetEntryHandler)
	r.Put("/{entry_id}", UpdateEntryHandler)
	r.Delete("/{entry_id}", DeleteEntryHandler)

	return r
}
