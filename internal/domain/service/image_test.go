package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"armabazar/pkg/errors"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestDetectImageTypeDeclaredWins(t *testing.T) {
	fileType, err := DetectImageType("photo.bin", "image/jpeg", nil)

	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", fileType)
}

func TestDetectImageTypeNormalizesJpg(t *testing.T) {
	fileType, err := DetectImageType("photo.bin", "image/jpg; charset=binary", nil)

	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", fileType)
}

func TestDetectImageTypeFallsBackToExtension(t *testing.T) {
	fileType, err := DetectImageType("photo.PNG", "application/octet-stream", nil)

	require.NoError(t, err)
	assert.Equal(t, "image/png", fileType)
}

func TestDetectImageTypeSniffsMagicBytes(t *testing.T) {
	data := append(bytes.Clone(pngMagic), make([]byte, 64)...)

	fileType, err := DetectImageType("upload", "application/octet-stream", data)

	require.NoError(t, err)
	assert.Equal(t, "image/png", fileType)
}

func TestDetectImageTypeRejectsUnknown(t *testing.T) {
	_, err := DetectImageType("notes.txt", "text/plain", []byte("just text"))

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestValidateImageSizeLimits(t *testing.T) {
	_, err := ValidateImage("a.png", "image/png", nil)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = ValidateImage("a.png", "image/png", make([]byte, MaxImageSize+1))
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	fileType, err := ValidateImage("a.png", "image/png", pngMagic)
	require.NoError(t, err)
	assert.Equal(t, "image/png", fileType)
}
