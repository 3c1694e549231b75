package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/DeliveryPulse/DP-Backend/internal/db"
	"github.com/DeliveryPulse/DP-Backend/internal/metrics"
	"github.com/DeliveryPulse/DP-Backend/internal/middleware"
	"github.com/DeliveryPulse/DP-Backend/internal/utils"
)

// CurrentUser loads the authenticated user for a request that already passed
// SessionMiddleware.
func CurrentUser(r *http.Request) (User, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return User{}, ErrUnauthenticated
	}
	var user User
	if err := db.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return User{}, ErrUnauthenticated
	}
	return user, nil
}

// sessionCookie builds the session_token cookie. Local dev (no PORT set)
// downgrades to Secure=false so cookies survive plain-HTTP testing.
func sessionCookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     "session_token",
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
	if os.Getenv("PORT") == "" {
		cookie.Secure = false
		cookie.SameSite = http.SameSiteLaxMode
	}
	return cookie
}

// SessionHandler exchanges the external assertion from the X-Session-ID
// header for an internal session token.
func SessionHandler(w http.ResponseWriter, r *http.Request) {
	assertion := r.Header.Get("X-Session-ID")
	if assertion == "" {
		http.Error(w, "Session ID required in X-Session-ID header", http.StatusBadRequest)
		return
	}

	token, user, err := store.CreateSession(r.Context(), assertion)
	if err != nil {
		if errors.Is(err, ErrExternalAuthFailed) {
			metrics.Default.RecordExchangeFailure("provider")
			http.Error(w, "Authentication service rejected the session", http.StatusBadGateway)
			return
		}
		log.Printf("[auth] create session: %v", err)
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	metrics.Default.RecordSessionCreated()
	http.SetCookie(w, sessionCookie(token, int(store.ttl/time.Second)))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// MeHandler returns the authenticated user.
func MeHandler(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"user": user})
}

// LogoutHandler deletes the presented session and clears the cookie. Calling
// it without a session, or twice with the same token, succeeds either way.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromRequest(r)
	if token != "" {
		if err := store.Logout(token); err != nil {
			log.Printf("[auth] logout: %v", err)
			http.Error(w, "Failed to log out", http.StatusInternalServerError)
			return
		}
	}

	http.SetCookie(w, sessionCookie("", -1))

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Logged out successfully")
}
