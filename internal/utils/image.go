package utils

import (
	"bytes"

	"github.com/disintegration/imaging"
)

// ProbeImageDimensions decodes an image and returns its pixel dimensions.
// Probing is best-effort: any decode failure yields nil dimensions, never
// an error.
func ProbeImageDimensions(data []byte) (width, height *int) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	return &w, &h
}
