package visual_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/visual"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestCompare(t *testing.T) {
	t.Parallel()

	white := color.RGBA{255, 255, 255, 255}

	t.Run("identical images", func(t *testing.T) {
		t.Parallel()
		d := visual.Compare(solid(10, 10, white), solid(10, 10, white), 0)
		assert.Zero(t, d.Pixels)
		assert.Equal(t, 100, d.Total)
		assert.Zero(t, d.Ratio)
		assert.Nil(t, d.Mask)
		assert.True(t, d.Passed())
	})

	t.Run("size mismatch fails regardless of threshold", func(t *testing.T) {
		t.Parallel()
		d := visual.Compare(solid(10, 10, white), solid(10, 12, white), 1)
		assert.True(t, d.SizeMismatch)
		assert.Equal(t, 1.0, d.Ratio)
		assert.False(t, d.Passed())
	})

	t.Run("partial difference", func(t *testing.T) {
		t.Parallel()
		a := solid(10, 10, white)
		b := solid(10, 10, white)
		for x := range 5 {
			b.Set(x, 0, color.RGBA{0, 0, 0, 255})
		}

		d := visual.Compare(a, b, 0.01)
		assert.Equal(t, 5, d.Pixels)
		assert.InDelta(t, 0.05, d.Ratio, 1e-9)
		assert.False(t, d.Passed())

		require.NotNil(t, d.Mask)
		assert.Equal(t, color.RGBA{255, 0, 0, 255}, d.Mask.RGBAAt(0, 0))
		assert.NotEqual(t, color.RGBA{255, 0, 0, 255}, d.Mask.RGBAAt(9, 9))

		assert.True(t, visual.Compare(a, b, 0.05).Passed())
	})

	t.Run("offset bounds are compared by position", func(t *testing.T) {
		t.Parallel()
		a := solid(4, 4, white)
		b := image.NewRGBA(image.Rect(2, 2, 6, 6))
		for y := 2; y < 6; y++ {
			for x := 2; x < 6; x++ {
				b.Set(x, y, white)
			}
		}
		d := visual.Compare(a, b, 0)
		assert.Zero(t, d.Pixels)
		assert.True(t, d.Passed())
	})
}
