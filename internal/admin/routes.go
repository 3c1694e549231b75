package admin

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
	r.Use(middleware.AdminMiddleware())
	r.Use(rl.GeneralMiddleware())

	r.Get("/entries", AllEntriesHandler)
	r.Get("/users", UsersHandler)
	r.Get("/export", ExportHandler)

	return r
}
