package ports

import "time"

// PasswordHasher hashes and verifies passwords (Argon2id). Verify recomputes
// with the parameters embedded in the stored hash, so hashes produced with
// older cost settings keep verifying.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and verifies bearer tokens. Verification is a pure
// function of the token, the clock and the signing secret; it never touches
// storage, so callers must re-check that the subject still exists.
type TokenIssuer interface {
	Issue(userID string, ttl time.Duration) (string, error)
	Verify(token string) (userID string, err error)
}
