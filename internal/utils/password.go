package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a plaintext password.  The cost comes
// from configuration so tests can run at bcrypt.MinCost.
func HashPassword(plain string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
