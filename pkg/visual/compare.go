package visual

import (
	"image"
	"image/color"
	"image/draw"
)

// Diff is the outcome of comparing two images.
type Diff struct {
	// Pixels is the number of differing pixels; Total the pixels compared.
	Pixels int
	Total  int
	// Ratio is Pixels/Total, or 1 when the sizes differ.
	Ratio     float64
	Threshold float64
	// SizeMismatch is set when the bounds differ; no pixels are compared then.
	SizeMismatch bool
	// Mask marks differing pixels in red over a faded copy of b. Nil on a
	// size mismatch or when nothing differs.
	Mask *image.RGBA
}

// Passed reports whether the ratio is within the threshold.
func (d Diff) Passed() bool {
	return !d.SizeMismatch && d.Ratio <= d.Threshold
}

var maskColor = color.RGBA{R: 255, A: 255}

// Compare returns the share of pixels that differ between a and b. Images of
// different sizes count as entirely different.
func Compare(a, b image.Image, threshold float64) Diff {
	d := Diff{Threshold: threshold}
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		d.SizeMismatch = true
		d.Ratio = 1
		return d
	}

	ra, rb := toRGBA(a), toRGBA(b)
	w, h := ab.Dx(), ab.Dy()
	d.Total = w * h
	if d.Total == 0 {
		return d
	}

	var mask *image.RGBA
	for y := range h {
		rowA := ra.Pix[y*ra.Stride : y*ra.Stride+w*4]
		rowB := rb.Pix[y*rb.Stride : y*rb.Stride+w*4]
		for x := 0; x < w*4; x += 4 {
			if rowA[x] == rowB[x] && rowA[x+1] == rowB[x+1] && rowA[x+2] == rowB[x+2] && rowA[x+3] == rowB[x+3] {
				continue
			}
			d.Pixels++
			if mask == nil {
				mask = fade(rb)
			}
			mask.SetRGBA(x/4, y, maskColor)
		}
	}
	d.Mask = mask
	d.Ratio = float64(d.Pixels) / float64(d.Total)
	return d
}

// toRGBA returns img as an *image.RGBA whose bounds start at the origin.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

func fade(src *image.RGBA) *image.RGBA {
	out := image.NewRGBA(src.Bounds())
	for i := 0; i < len(src.Pix); i += 4 {
		out.Pix[i] = 255 - (255-src.Pix[i])/4
		out.Pix[i+1] = 255 - (255-src.Pix[i+1])/4
		out.Pix[i+2] = 255 - (255-src.Pix[i+2])/4
		out.Pix[i+3] = 255
	}
	return out
}
