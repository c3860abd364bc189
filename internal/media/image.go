// internal/media/image.go
// Image normalization: every upload is re-encoded so stored media has
// a bounded size and a single format regardless of client input.

package media

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// Normalize decodes an image, scales it down to fit within
// maxDimension on both axes (never upscaling) and re-encodes it as
// JPEG at the given quality.
func Normalize(r io.Reader, maxDimension, quality int) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), nil
}
