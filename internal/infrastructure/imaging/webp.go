package imaging

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	xwebp "golang.org/x/image/webp"
)

// DefaultQuality is the lossy WebP quality used when none is configured.
const DefaultQuality = 80

// WebPEncoder decodes JPEG, PNG or WebP input and re-encodes it as lossy WebP.
type WebPEncoder struct {
	quality float32
}

func NewWebPEncoder(quality int) *WebPEncoder {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &WebPEncoder{quality: float32(quality)}
}

func (e *WebPEncoder) Encode(r io.Reader) ([]byte, error) {
	img, err := decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: e.quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(12)
	if err == nil && isWebP(header) {
		return xwebp.Decode(br)
	}
	img, _, err := image.Decode(br)
	return img, err
}

// isWebP checks for the RIFF container carrying a WEBP form type.
func isWebP(header []byte) bool {
	return len(header) >= 12 && string(header[0:4]) == "RIFF" && string(header[8:12]) == "WEBP"
}
