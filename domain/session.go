package domain

import "time"

// AuthSession represents a pending authorization exchange, keyed by its
// human-enterable code. Sessions are write-once: they are created by the code
// issuer and removed on the first successful confirmation.
type AuthSession struct {
	Code          string    `bson:"_id"            json:"code"`
	State         string    `bson:"state"          json:"state"`
	CodeChallenge string    `bson:"code_challenge" json:"code_challenge"`
	CodeVerifier  string    `bson:"code_verifier"  json:"code_verifier"`
	RedirectURI   string    `bson:"redirect_uri,omitempty" json:"redirect_uri,omitempty"`
	CreatedAt     time.Time `bson:"created_at"     json:"created_at"`
	ExpiresAt     time.Time `bson:"expires_at"     json:"expires_at"`
}

// Expired reports whether the session's record-level expiry has passed.
// The store carries its own TTL for the same horizon; the record check is
// authoritative so a not-yet-purged entry is still treated as absent.
func (s *AuthSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
