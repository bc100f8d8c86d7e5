package domain

import "io"

// TokenIssuer выпускает токен доступа для пользователя.
type TokenIssuer interface {
	Issue(user *User) (string, error)
}

// PasswordHasher хеширует и проверяет пароли. Хеш необратим.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// BlobStore сохраняет загруженные файлы. Save проверяет расширение и
// ограничение размера и обязан удалить частично записанный файл при
// превышении лимита. Возвращаемый URL хранится в строках сдач и уроков.
type BlobStore interface {
	Save(filename string, r io.Reader) (string, error)
	Open(name string) (io.ReadCloser, error)
	Remove(fileURL string) error
}
