package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"armabazar/pkg/errors"
)

const (
	MaxImageSize      = 5 * 1024 * 1024
	MaxImagesPerEntry = 10
)

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
	"image/heic": true,
	"image/heif": true,
}

var imageTypeByExtension = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
	".heic": "image/heic",
	".heif": "image/heif",
}

// DetectImageType resolves the image MIME type of an upload. The declared
// Content-Type wins when it is a known image type, then the filename
// extension, then magic-byte sniffing. Unknown files are rejected.
func DetectImageType(filename, declared string, data []byte) (string, error) {
	if t := normalizeMime(declared); allowedImageTypes[t] {
		return t, nil
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if t, ok := imageTypeByExtension[ext]; ok {
		return t, nil
	}

	if sniffed := normalizeMime(mimetype.Detect(data).String()); allowedImageTypes[sniffed] {
		return sniffed, nil
	}

	return "", errors.BadRequest(fmt.Sprintf("File %q is not a supported image type", filename), nil)
}

// ValidateImage checks size and type of a single upload and returns the
// resolved MIME type.
func ValidateImage(filename, declared string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.BadRequest(fmt.Sprintf("File %q is empty", filename), nil)
	}
	if len(data) > MaxImageSize {
		return "", errors.BadRequest(fmt.Sprintf("File %q exceeds the maximum size of %dMB", filename, MaxImageSize/(1024*1024)), nil)
	}
	return DetectImageType(filename, declared, data)
}

func normalizeMime(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if i := strings.Index(t, ";"); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	if t == "image/jpg" {
		t = "image/jpeg"
	}
	return t
}
