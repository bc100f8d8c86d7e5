package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"skillmap-service/internal/domain"

	"github.com/google/uuid"
)

// MaxUploadBytes — предельный размер загружаемого файла.
const MaxUploadBytes = 50 * 1024 * 1024

// allowedExtensions — допустимые расширения сдаваемых файлов.
var allowedExtensions = map[string]bool{
	".docx": true,
	".pdf":  true,
	".zip":  true,
}

// LocalStore реализует domain.BlobStore поверх локальной файловой системы.
type LocalStore struct {
	dir      string
	maxBytes int64
}

// NewLocalStore создает хранилище в каталоге dir, создавая его при необходимости.
func NewLocalStore(dir string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, maxBytes: maxBytes}, nil
}

// Save записывает файл под случайным именем, сохраняя расширение оригинала.
// При превышении лимита размера частично записанный файл удаляется,
// чтобы не оставалось блобов без ссылок.
func (s *LocalStore) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", domain.ErrUnsupportedFileType
	}

	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(out, io.LimitReader(r, s.maxBytes+1))
	closeErr := out.Close()

	if err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if written > s.maxBytes {
		_ = os.Remove(path)
		return "", domain.ErrFileTooLarge
	}

	return "/" + s.dir + "/" + name, nil
}

// Open открывает ранее сохраненный файл по имени.
func (s *LocalStore) Open(name string) (io.ReadCloser, error) {
	// Запрещаем выход за пределы каталога хранилища
	if strings.Contains(name, "..") || strings.ContainsRune(name, os.PathSeparator) {
		return nil, domain.ErrSubmissionNotFound
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Remove удаляет файл по URL, полученному из Save.
func (s *LocalStore) Remove(fileURL string) error {
	name := filepath.Base(fileURL)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
