package services

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxPhotoBytes caps a decoded guest ID photo at 8 MB.
const maxPhotoBytes = 8 << 20

// PhotoService stores guest ID photos on local disk under uploads/ and
// hands back the relative path that goes into the record.
type PhotoService struct {
	Root string
}

func NewPhotoService(root string) *PhotoService {
	if root == "" {
		root = "uploads"
	}
	return &PhotoService{Root: root}
}

// SaveBase64 decodes a data-URL (or bare base64) image and writes it under
// Root/subdir. Returns the stored path, e.g. "guests/1756709999.jpg".
func (s *PhotoService) SaveBase64(b64, subdir string) (string, error) {
	if strings.TrimSpace(b64) == "" {
		return "", validation("photo", "photo payload is empty")
	}
	if idx := strings.Index(b64, "base64,"); idx >= 0 {
		b64 = b64[idx+7:]
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", validation("photo", "photo is not valid base64: %v", err)
	}
	if len(data) > maxPhotoBytes {
		return "", validation("photo", "photo is %d bytes, limit is %d", len(data), maxPhotoBytes)
	}

	dir := filepath.Join(s.Root, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	filename := fmt.Sprintf("%d.jpg", time.Now().UnixNano())
	fullpath := filepath.Join(dir, filename)
	if err := os.WriteFile(fullpath, data, 0644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}

	return filepath.ToSlash(filepath.Join(subdir, filename)), nil
}

// Delete removes a stored photo; a missing file is not an error.
func (s *PhotoService) Delete(ref string) error {
	if ref == "" {
		return nil
	}
	// Keep deletions inside the uploads root.
	clean := filepath.Clean(ref)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return validation("photo", "invalid photo path %q", ref)
	}
	err := os.Remove(filepath.Join(s.Root, clean))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}
