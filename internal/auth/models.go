package auth

import "time"

// User is created on first successful identity exchange and immutable
// afterwards except for its role.
type User struct {
	UserID     string    `gorm:"primaryKey" json:"user_id"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Name       string    `json:"name"`
	PictureURL string    `json:"picture_url"`
	Role       string    `gorm:"default:'user'" json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

// Session holds one minted token. Only the SHA3-256 digest of the token is
// stored, so a database read never yields a usable credential. A user may
// hold any number of concurrent sessions; expiry is absolute.
type Session struct {
	TokenDigest string    `gorm:"primaryKey" json:"-"`
	UserID      string    `gorm:"not null;index" json:"-"`
	ExpiresAt   time.Time `gorm:"not null;index" json:"-"`
	CreatedAt   time.Time `json:"-"`
}

func (User) TableName() string    { return "app_auth.users" }
func (Session) TableName() string { return "app_auth.sessions" }
