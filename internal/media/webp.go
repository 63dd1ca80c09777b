package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	maxThumbWidth  = 640
	maxThumbHeight = 640
	thumbQuality   = 80
)

// ToWebPThumbnail decodes a jpeg/png upload, downscales it to the
// thumbnail bounds keeping aspect ratio and re-encodes it as webp.
func ToWebPThumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	img = downscale(img, maxThumbWidth, maxThumbHeight)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	return buf.Bytes(), nil
}

func downscale(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if w <= maxW && h <= maxH {
		return img
	}

	ratio := float64(maxW) / float64(w)
	if r := float64(maxH) / float64(h); r < ratio {
		ratio = r
	}

	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*ratio), int(float64(h)*ratio)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
