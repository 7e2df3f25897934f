package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the bcrypt work factor for password hashes. Cost 12 takes
// roughly a quarter second on current hardware, slow enough to resist
// offline cracking without making login noticeably laggy.
const bcryptCost = 12

// HashPassword computes a salted bcrypt hash of the plaintext password.
// The salt is random, so hashing the same password twice yields different
// hash strings; the salt and cost are embedded in the output.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the bcrypt
// hash. bcrypt recomputes the hash with the embedded salt and work factor
// and compares in constant time.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// dummyHash is a valid bcrypt hash of an unguessable random value. Login
// verifies against it when the username does not exist, so the unknown-user
// and wrong-password paths cost the same amount of work.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// BurnVerification performs a bcrypt comparison that always fails, taking
// the same time as a real password check. Used to keep login timing
// uniform when no stored hash exists for the supplied username.
func BurnVerification(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
