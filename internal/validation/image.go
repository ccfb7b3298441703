package validation

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// MaxImageBytes is the largest accepted image payload.
const MaxImageBytes = 10 * 1024 * 1024

// formatExtensions maps the decoder format name to the stored file extension.
var formatExtensions = map[string]string{
	"jpeg": "jpg",
	"png":  "png",
	"gif":  "gif",
	"webp": "webp",
}

// SniffImage verifies that data is a decodable image of an accepted format and
// returns the file extension to store it under. It decodes only the header,
// not the full image.
func SniffImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image payload is empty")
	}
	if len(data) > MaxImageBytes {
		return "", fmt.Errorf("image exceeds the %d byte limit", MaxImageBytes)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("file is not a recognized image")
	}

	ext, ok := formatExtensions[format]
	if !ok {
		return "", fmt.Errorf("unsupported image format %q", format)
	}
	return ext, nil
}
