package storage

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngB64(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func gifB64(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.White, color.Black})
	require.NoError(t, gif.Encode(&buf, img, nil))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestValid(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir())

	assert.True(t, s.Valid(pngB64(t)))
	assert.False(t, s.Valid("Wrong photo"))
	assert.False(t, s.Valid(base64.StdEncoding.EncodeToString([]byte("plain bytes"))))
	// decodes but not an accepted format
	assert.False(t, s.Valid(gifB64(t)))
}

func TestSaveAndRemove(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "photos")
	s := NewStore(dir)

	name, err := s.Save(pngB64(t))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))

	_, err = os.Stat(filepath.Join(dir, name))
	require.NoError(t, err)

	s.Remove(name)
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	// removing again is a no-op
	s.Remove(name)
	s.Remove("")
}

func TestSave_RejectsBadPayload(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir())
	_, err := s.Save("not base64 at all!!!")
	assert.Error(t, err)
}
