package auth

import (
	"net/http"

	"github.com/DeliveryPulse/DP-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(rl *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()
	sessionFetcher := SessionInfo{}

	r.Group(func(r chi.Router) {
		r.Use(rl.LoginMiddleware())
		r.Post("/session", SessionHandler)
		// Logout stays outside SessionMiddleware so an expired token can
		// still clear its cookie; the per-IP budget throttles it instead.
		r.Post("/logout", LogoutHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Get("/me", MeHandler)
	})

	return r
}
