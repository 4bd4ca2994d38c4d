package document

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

// ErrEmptyImage is returned for an empty image source.
var ErrEmptyImage = errors.New("empty image source")

// embeddedImage is a decoded image ready to be registered with the PDF.
type embeddedImage struct {
	data   []byte
	kind   string // gofpdf image type: PNG, JPG or GIF
	width  int
	height int
}

// aspect returns height divided by width.
func (img embeddedImage) aspect() float64 {
	if img.width == 0 {
		return 1
	}
	return float64(img.height) / float64(img.width)
}

// decodeImage accepts a data URL ("data:image/png;base64,...") or bare
// base64 and checks that the payload is a PNG, JPEG or GIF image.
func decodeImage(src string) (embeddedImage, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return embeddedImage{}, ErrEmptyImage
	}
	if strings.HasPrefix(src, "data:") {
		comma := strings.IndexByte(src, ',')
		if comma < 0 {
			return embeddedImage{}, errors.New("malformed data URL")
		}
		if !strings.Contains(src[:comma], ";base64") {
			return embeddedImage{}, errors.New("data URL is not base64 encoded")
		}
		src = src[comma+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(src)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(src, "="))
		if err != nil {
			return embeddedImage{}, fmt.Errorf("decode base64: %w", err)
		}
	}
	return inspectImage(raw)
}

// inspectImage validates raw image bytes and reads their dimensions.
func inspectImage(raw []byte) (embeddedImage, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return embeddedImage{}, fmt.Errorf("decode image: %w", err)
	}

	var kind string
	switch format {
	case "png":
		kind = "PNG"
	case "jpeg":
		kind = "JPG"
	case "gif":
		kind = "GIF"
	default:
		return embeddedImage{}, fmt.Errorf("unsupported image format %q", format)
	}
	return embeddedImage{data: raw, kind: kind, width: cfg.Width, height: cfg.Height}, nil
}
