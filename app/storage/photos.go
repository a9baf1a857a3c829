package storage

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes decoded avatar images under Dir, one file per photo with a
// random name. Only jpeg and png payloads are accepted.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store { return &Store{Dir: dir} }

func (s *Store) decode(b64 string) ([]byte, string, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, "", fmt.Errorf("decode photo: %w", err)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("decode photo: %w", err)
	}
	switch format {
	case "jpeg", "png":
		return raw, format, nil
	}
	return nil, "", fmt.Errorf("unsupported image format %q", format)
}

// Valid reports whether b64 is a base64-encoded jpeg or png.
func (s *Store) Valid(b64 string) bool {
	_, _, err := s.decode(b64)
	return err == nil
}

// Save decodes b64 and writes it as <uuid>.<ext> under Dir, creating the
// directory on first use. Returns the stored filename.
func (s *Store) Save(b64 string) (string, error) {
	raw, format, err := s.decode(b64)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create photo dir: %w", err)
	}
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + "." + format
	if err := os.WriteFile(filepath.Join(s.Dir, name), raw, 0o644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}
	return name, nil
}

// Remove deletes a stored photo. Missing files are not an error.
func (s *Store) Remove(name string) {
	if name == "" {
		return
	}
	_ = os.Remove(filepath.Join(s.Dir, name))
}
