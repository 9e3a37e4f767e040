package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("only jpeg and png images are accepted")
	ErrFileTooLarge    = errors.New("image exceeds the 5 MB limit")
)

const maxPosterSize = 5 << 20

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// LocalStore writes uploads to a directory served as static files under
// /media.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	eventsDir := filepath.Join(dir, "events")
	if err := os.MkdirAll(eventsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// StorePoster validates the upload and writes it under a fresh random name,
// never the client-supplied one.
func (s *LocalStore) StorePoster(file *multipart.FileHeader) (string, error) {
	if file.Size > maxPosterSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	expectedType, ok := allowedExtensions[ext]
	if !ok {
		return "", ErrUnsupportedType
	}
	if ct := file.Header.Get("Content-Type"); ct != "" && ct != expectedType {
		return "", ErrUnsupportedType
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(s.dir, "events", name)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", err
	}

	return s.baseURL + "/media/uploads/events/" + name, nil
}
