package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/DeliveryPulse/DP-Backend/internal/db"
	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"
	"gorm.io/gorm"
)

// SessionStore exchanges external assertions for internal sessions and
// validates tokens on every request. The external assertion is single-use
// and short-lived; the minted token lives for the full TTL.
type SessionStore struct {
	provider    IdentityProvider
	ttl         time.Duration
	adminEmails func(string) bool
}

func NewSessionStore(provider IdentityProvider, ttl time.Duration, isAdminEmail func(string) bool) *SessionStore {
	if isAdminEmail == nil {
		isAdminEmail = func(string) bool { return false }
	}
	return &SessionStore{provider: provider, ttl: ttl, adminEmails: isAdminEmail}
}

// TokenDigest maps a raw token to its at-rest lookup key.
func TokenDigest(token string) string {
	sum := sha3.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func mintToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("minting token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// CreateSession exchanges the assertion with the identity provider, upserts
// the user by email and mints a fresh session token. An existing user's role
// is left untouched; a new user gets role=admin only if their email is on
// the configured admin list.
func (s *SessionStore) CreateSession(ctx context.Context, assertion string) (string, User, error) {
	ident, err := s.provider.Exchange(ctx, assertion)
	if err != nil {
		return "", User{}, err
	}

	var user User
	err = db.DB.First(&user, "email = ?", ident.Email).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		role := "user"
		if s.adminEmails(ident.Email) {
			role = "admin"
		}
		user = User{
			UserID:     uuid.NewString(),
			Email:      ident.Email,
			Name:       ident.Name,
			PictureURL: ident.Picture,
			Role:       role,
		}
		if createErr := db.DB.Create(&user).Error; createErr != nil {
			// Two first logins for the same email can race; the loser's
			// insert hits the unique email index. Reuse the winner's row.
			if err := db.DB.First(&user, "email = ?", ident.Email).Error; err != nil {
				return "", User{}, fmt.Errorf("creating user: %w", createErr)
			}
		}
	case err != nil:
		return "", User{}, fmt.Errorf("looking up user: %w", err)
	}

	token, err := mintToken()
	if err != nil {
		return "", User{}, err
	}

	session := Session{
		TokenDigest: TokenDigest(token),
		UserID:      user.UserID,
		ExpiresAt:   time.Now().Add(s.ttl),
	}
	if err := db.DB.Create(&session).Error; err != nil {
		return "", User{}, fmt.Errorf("creating session: %w", err)
	}

	return token, user, nil
}

// ValidateSession is a pure lookup: no expiry extension, no cleanup on read.
func (s *SessionStore) ValidateSession(token string) (User, error) {
	if token == "" {
		return User{}, ErrUnauthenticated
	}

	var session Session
	err := db.DB.First(&session, "token_digest = ?", TokenDigest(token)).Error
	if err != nil {
		return User{}, ErrUnauthenticated
	}

	if time.Now().After(session.ExpiresAt) {
		return User{}, ErrUnauthenticated
	}

	var user User
	if err := db.DB.First(&user, "user_id = ?", session.UserID).Error; err != nil {
		return User{}, ErrUnauthenticated
	}

	return user, nil
}

// Logout deletes the session if present. Deleting an absent token is not
// an error.
func (s *SessionStore) Logout(token string) error {
	if token == "" {
		return nil
	}
	return db.DB.Where("token_digest = ?", TokenDigest(token)).Delete(&Session{}).Error
}

// DeleteExpired removes sessions past their expiry and returns the count.
func (s *SessionStore) DeleteExpired() (int64, error) {
	res := db.DB.Where("expires_at < ?", time.Now()).Delete(&Session{})
	return res.RowsAffected, res.Error
}

// StartSweeper deletes expired sessions on an interval until stop is called.
func (s *SessionStore) StartSweeper(interval time.Duration) (stop func()) {
	stopCh := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				if n, err := s.DeleteExpired(); err != nil {
					log.Printf("[auth] session sweep failed: %v", err)
				} else if n > 0 {
					log.Printf("[auth] swept %d expired sessions", n)
				}
			}
		}
	}()

	return func() { close(stopCh) }
}
