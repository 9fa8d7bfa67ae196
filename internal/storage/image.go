package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	// MaxUploadSize bounds a single image upload.
	MaxUploadSize = 10 << 20

	maxWidth = 1600
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// AllowedContentType reports whether an upload content type is accepted.
func AllowedContentType(ct string) bool {
	return allowedTypes[ct]
}

// ProcessImage decodes an uploaded image, scales it down to at most maxWidth
// pixels wide, and re-encodes it as webp. All stored images end up in one
// format regardless of what the client sent.
func ProcessImage(r io.Reader, contentType string) ([]byte, error) {
	var (
		img image.Image
		err error
	)

	switch contentType {
	case "image/jpeg":
		img, err = jpeg.Decode(r)
	case "image/png":
		img, err = png.Decode(r)
	case "image/gif":
		img, err = gif.Decode(r)
	case "image/webp":
		img, err = webp.Decode(r)
	default:
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	img = scaleDown(img)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	return buf.Bytes(), nil
}

func scaleDown(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxWidth {
		return img
	}

	h := b.Dy() * maxWidth / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
