package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidImageType is returned for uploads that are not JPEG or PNG.
var ErrInvalidImageType = errors.New("invalid image type, only JPEG and PNG are allowed")

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Upload is an image received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// DiskPhotoStore keeps photos under root/subdir and hands out references
// relative to root, e.g. "uploads/3f2a….png".
type DiskPhotoStore struct {
	root   string
	subdir string
}

// NewDiskPhotoStore creates a DiskPhotoStore.
func NewDiskPhotoStore(root, subdir string) *DiskPhotoStore {
	return &DiskPhotoStore{root: root, subdir: strings.Trim(subdir, "/")}
}

// Save writes the upload to disk under a random name and returns its reference.
func (s *DiskPhotoStore) Save(u Upload) (string, error) {
	defaultExt, ok := allowedImageTypes[u.ContentType]
	if !ok {
		return "", ErrInvalidImageType
	}

	ext := strings.ToLower(filepath.Ext(u.Filename))
	if !allowedExtensions[ext] {
		ext = defaultExt
	}

	dir := filepath.Join(s.root, s.subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create photo dir: %w", err)
	}

	name := strings.ReplaceAll(uuid.New().String(), "-", "") + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}

	if _, err := io.Copy(dst, u.Body); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write photo: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("close photo: %w", err)
	}

	return path.Join(s.subdir, name), nil
}

// Delete removes the file behind ref. A missing file is not an error.
func (s *DiskPhotoStore) Delete(ref string) error {
	if ref == "" {
		return nil
	}
	full, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove photo %s: %w", ref, err)
	}
	return nil
}

// resolve maps a reference to a path inside root, rejecting traversal.
func (s *DiskPhotoStore) resolve(ref string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(ref))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("photo reference %q escapes media root", ref)
	}
	return filepath.Join(s.root, clean), nil
}
