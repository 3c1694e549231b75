package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/DeliveryPulse/DP-Backend/internal/admin"
	"github.com/DeliveryPulse/DP-Backend/internal/auth"
	"github.com/DeliveryPulse/DP-Backend/internal/config"
	"github.com/DeliveryPulse/DP-Backend/internal/dashboard"
	"github.com/DeliveryPulse/DP-Backend/internal/db"
	"github.com/DeliveryPulse/DP-Backend/internal/entries"
	"github.com/DeliveryPulse/DP-Backend/internal/metrics"
	"github.com/DeliveryPulse/DP-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Delivery Dashboard API",
		"status":  "running",
	})
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db.Connect()

	auth.Init(cfg)
	entries.Init()
	admin.Init()

	rl := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		GeneralRate:     rate.Limit(float64(cfg.GeneralRatePerMin) / 60.0),
		GeneralBurst:    cfg.GeneralBurst,
		LoginRate:       rate.Limit(float64(cfg.LoginRatePerMin) / 60.0),
		LoginBurst:      cfg.LoginBurst,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         15 * time.Minute,
	})
	defer rl.Stop()

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Use(metrics.Default.Middleware)

	r.Get("/", RootHandler)
	r.Get("/health", HealthHandler)
	r.Handle("/metrics", metrics.Handler())

	r.Mount("/auth", auth.SetupRoutes(rl))
	r.Mount("/entries", entries.SetupRoutes(rl))
	r.Mount("/dashboard", dashboard.SetupRoutes(rl))
	r.Mount("/admin", admin.SetupRoutes(rl))

	fmt.Printf("Server listening on port :%s...\n", cfg.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
