package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidListingType(t *testing.T) {
	assert.True(t, ValidListingType("NABIZIM"))
	assert.True(t, ValidListingType("SHANIM"))
	assert.False(t, ValidListingType("nabizim"))
	assert.False(t, ValidListingType("SELLING"))
}

func TestValidCondition(t *testing.T) {
	assert.True(t, ValidCondition(ConditionNew))
	assert.True(t, ValidCondition(ConditionNonFunctional))
	assert.False(t, ValidCondition("MINT"))

	// Custom conditions carry a prefix and a length cap.
	assert.True(t, ValidCondition("custom-na dily"))
	assert.False(t, ValidCondition("custom-"))
	assert.False(t, ValidCondition("custom-"+strings.Repeat("x", 21)))
}

func TestNormalizeMainImage(t *testing.T) {
	p := &Product{Images: []string{"a.png", "b.png"}, MainImage: "c.png"}
	p.NormalizeMainImage()
	assert.Equal(t, "a.png", p.MainImage)

	p = &Product{Images: []string{"a.png", "b.png"}, MainImage: "b.png"}
	p.NormalizeMainImage()
	assert.Equal(t, "b.png", p.MainImage)

	p = &Product{}
	p.NormalizeMainImage()
	assert.Empty(t, p.MainImage)
}
