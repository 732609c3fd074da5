package domain

import "time"

// AccessToken is the bearer credential minted after a confirmed exchange.
// Immutable once issued; validity is a pure function of time vs ExpiresAt.
type AccessToken struct {
	Token     string    `bson:"_id"        json:"token"`
	UserID    string    `bson:"user_id"    json:"user_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}

// Valid reports whether the token is usable at the given instant. A token is
// valid strictly before its expiry instant, never at or after it.
func (t *AccessToken) Valid(now time.Time) bool {
	return now.Before(t.ExpiresAt)
}
