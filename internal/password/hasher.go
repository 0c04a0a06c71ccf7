package password

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	autherror "github.com/prasetyowira/credential-core/internal/errors"
)

// Hasher produces and verifies bcrypt password hashes. The hashed form is
// self-describing (algorithm version, cost, and salt are embedded), so hashes
// produced under older cost parameters remain verifiable.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", autherror.ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// Verify reports whether password matches hashed. It never returns an error:
// a malformed or empty hashed form verifies as false. needsRehash is true when
// the match succeeded but the stored hash was produced with a weaker cost than
// the currently configured one, signalling the caller to re-hash and store on
// this login. A stronger stored cost is left alone.
func (h *Hasher) Verify(password, hashed string) (matched, needsRehash bool) {
	if hashed == "" {
		return false, false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)); err != nil {
		return false, false
	}

	cost, err := bcrypt.Cost([]byte(hashed))
	if err != nil {
		return true, false
	}

	return true, cost < h.cost
}
