package auth

import (
	"github.com/DeliveryPulse/DP-Backend/internal/db"
	"github.com/DeliveryPulse/DP-Backend/internal/utils"
)

// SessionInfo adapts session lookup to the middleware.SessionFetcher interface.
type SessionInfo struct{}

func (si SessionInfo) FindSessionByToken(token string) (utils.SessionData, error) {
	var session Session

	err := db.DB.First(&session, "token_digest = ?", TokenDigest(token)).Error
	if err != nil {
		return utils.SessionData{}, err
	}

	return utils.SessionData{
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}
