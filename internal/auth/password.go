package auth

import "golang.org/x/crypto/bcrypt"

// BcryptHasher реализует domain.PasswordHasher поверх bcrypt.
type BcryptHasher struct{}

// NewBcryptHasher создает новый экземпляр BcryptHasher.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

// Hash возвращает bcrypt-хеш пароля.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify сравнивает пароль с хешем.
func (h *BcryptHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
