// internal/media/image_test.go

package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImage encodes a solid PNG of the given size
func testImage(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestNormalizeDownscales(t *testing.T) {
	out, err := Normalize(testImage(t, 2000, 1000), 800, 80)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	bounds := decoded.Bounds()
	assert.Equal(t, 800, bounds.Dx())
	assert.Equal(t, 400, bounds.Dy())
}

func TestNormalizeNeverUpscales(t *testing.T) {
	out, err := Normalize(testImage(t, 100, 50), 800, 80)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	bounds := decoded.Bounds()
	assert.Equal(t, 100, bounds.Dx())
	assert.Equal(t, 50, bounds.Dy())
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, err := Normalize(strings.NewReader("not an image"), 800, 80)

	assert.Error(t, err)
}

func TestUploadImageToLocalStorage(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "http://localhost:8080")
	require.NoError(t, err)

	svc := NewServiceWithStorage(storage, 800, 80)

	url, err := svc.UploadImage(context.Background(), testImage(t, 1200, 1200), "posts")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/posts/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	// The stored file is the normalized JPEG
	var stored string
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			stored = path
		}
		return err
	})
	require.NoError(t, err)
	require.NotEmpty(t, stored)

	f, err := os.Open(stored)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := jpeg.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 800, decoded.Bounds().Dx())
}
