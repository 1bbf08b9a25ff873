package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher is the one-way salted hashing collaborator used by the
// user handlers. Hashing is deliberately expensive; tests inject a cheaper
// cost.
type PasswordHasher interface {
	// Hash returns the salted hash of a plaintext password
	Hash(password string) (string, error)

	// Verify reports whether the plaintext password matches the stored hash
	Verify(hash, password string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher with the given cost.
// A cost outside bcrypt's valid range falls back to the default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// NewDefaultHasher creates a bcrypt hasher with the default cost
func NewDefaultHasher() *BcryptHasher {
	return NewBcryptHasher(bcrypt.DefaultCost)
}

// Hash returns the bcrypt hash of the password
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether the password matches the hash
func (h *BcryptHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
