package charts

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/KaramelBytes/dsamod-cli/internal/analysis"
)

const (
	cellHeight = 28
	titleSpace = 36
)

var (
	low  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	high = color.RGBA{R: 8, G: 48, B: 107, A: 255}
)

// Heatmap renders a platform by category grid shaded by proportion, with the
// percentage written in each cell. The image size follows the labels.
func Heatmap(title string, t *analysis.RateTable) ([]byte, error) {
	if t == nil || len(t.Platforms) == 0 || len(t.Categories) == 0 {
		return nil, errNoData
	}
	face := basicfont.Face7x13
	measure := &font.Drawer{Face: face}

	rowLabel := 0
	for _, p := range t.Platforms {
		if w := measure.MeasureString(p).Ceil(); w > rowLabel {
			rowLabel = w
		}
	}
	rowLabel += 2 * margin
	cellWidth := 72
	for _, c := range t.Categories {
		if w := measure.MeasureString(c).Ceil() + margin; w > cellWidth {
			cellWidth = w
		}
	}

	width := rowLabel + cellWidth*len(t.Categories) + margin
	height := titleSpace + cellHeight*(len(t.Platforms)+1) + margin
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	text := func(s string, x, y int, c color.Color) {
		d := &font.Drawer{Dst: img, Src: image.NewUniform(c), Face: face,
			Dot: fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}}
		d.DrawString(s)
	}
	centered := func(s string, left, top, w int, c color.Color) {
		tw := measure.MeasureString(s).Ceil()
		text(s, left+(w-tw)/2, top+cellHeight/2+face.Metrics().Ascent.Ceil()/2, c)
	}

	text(title, margin, titleSpace-14, color.Black)
	for j, c := range t.Categories {
		centered(c, rowLabel+j*cellWidth, titleSpace, cellWidth, color.Black)
	}
	for i, p := range t.Platforms {
		top := titleSpace + cellHeight*(i+1)
		centered(p, 0, top, rowLabel, color.Black)
		for j := range t.Categories {
			v := t.At(i, j)
			left := rowLabel + j*cellWidth
			cell := image.Rect(left+1, top+1, left+cellWidth-1, top+cellHeight-1)
			draw.Draw(img, cell, image.NewUniform(shade(v)), image.Point{}, draw.Src)
			fg := color.Color(color.Black)
			if v >= 0.5 {
				fg = color.White
			}
			centered(fmt.Sprintf("%.1f%%", v*100), left, top, cellWidth, fg)
		}
	}
	return encode(img)
}

// shade interpolates between the low and high colors for v in [0, 1].
func shade(v float64) color.RGBA {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*v + 0.5)
	}
	return color.RGBA{R: mix(low.R, high.R), G: mix(low.G, high.G), B: mix(low.B, high.B), A: 255}
}
