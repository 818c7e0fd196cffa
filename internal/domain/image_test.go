package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImagePool_Validate(t *testing.T) {
	tests := []struct {
		name    string
		pool    ImagePool
		wantErr string
	}{
		{"valid", ImagePool(testPool(20)), ""},
		{"too small", ImagePool(testPool(19)), "not enough images"},
		{"missing id", append(ImagePool(testPool(20)), ImageItem{Locator: "x"}), "id is required"},
		{"missing locator", append(ImagePool(testPool(20)), ImageItem{ID: "new"}), "locator is required"},
		{"duplicate", append(ImagePool(testPool(20)), ImageItem{ID: "img001", Locator: "x"}), "duplicate id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pool.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestImagePool_Find(t *testing.T) {
	p := ImagePool(testPool(3))
	img, ok := p.Find("img002")
	assert.True(t, ok)
	assert.True(t, img.AIGenerated)

	_, ok = p.Find("nope")
	assert.False(t, ok)
}
