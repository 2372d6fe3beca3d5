package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password with the given bcrypt cost.
// Costs outside bcrypt's valid range fall back to the library default.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a plaintext password against its stored hash.
// A nil return means the password matches.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
