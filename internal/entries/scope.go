package entries

import (
	"errors"

	"github.com/DeliveryPulse/DP-Backend/internal/auth"
	"gorm.io/gorm"
)

var (
	// ErrForbidden is an ownership or role violation on a write.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the referenced entry does not exist. It is decided
	// before any ownership check.
	ErrNotFound = errors.New("entry not found")
)

// Scope is the visibility predicate derived from a user's role. It is applied
// to every entry read, including the slices fed to dashboard aggregation, and
// cannot be widened by anything in a request payload.
type Scope struct {
	All     bool
	OwnerID string
}

// ScopeFor derives the scope from the validated session's user — never from
// client-supplied flags.
func ScopeFor(user auth.User) Scope {
	if user.Role == "admin" {
		return Scope{All: true}
	}
	return Scope{OwnerID: user.UserID}
}

// Apply narrows tx to the rows the scope permits.
func (s Scope) Apply(tx *gorm.DB) *gorm.DB {
	if s.All {
		return tx
	}
	return tx.Where("user_id = ?", s.OwnerID)
}

// Allows reports whether an entry owned by ownerID is visible under s.
func (s Scope) Allows(ownerID string) bool {
	return s.All || s.OwnerID == ownerID
}

// AuthorizeWrite decides whether user may mutate an entry owned by ownerID.
// Callers must resolve existence first: a missing entry is ErrNotFound
// regardless of who asks.
func AuthorizeWrite(user auth.User, ownerID string) error {
	if user.UserID == ownerID || user.Role == "admin" {
		return nil
	}
	return ErrForbidden
}
