package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword turns a plaintext password into a one-way digest. It is
// called explicitly by the signup path before the user record is persisted;
// the storage layer never hashes anything itself.
func HashPassword(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether plain matches the stored digest.
func CheckPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
