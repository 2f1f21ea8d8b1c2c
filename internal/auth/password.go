package auth

import "golang.org/x/crypto/bcrypt"

// HashSecret hashes a client secret with the given bcrypt cost.
func HashSecret(secret string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CompareSecret verifies a secret against its bcrypt hash.
func CompareSecret(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
