package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a throwaway bcrypt hash (of no password anyone holds). Login
// verifies against it when the username does not exist so the unknown-user
// path costs one bcrypt comparison, same as the known-user path.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Hasher wraps bcrypt with a configured work factor. The produced hash string
// embeds the cost and a fresh random salt, so Verify needs no extra state.
type Hasher struct {
	cost int
}

func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{cost: cost}
}

func (h Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. bcrypt's comparison is
// constant-time over the digest.
func (h Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
