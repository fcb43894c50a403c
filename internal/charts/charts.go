package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/KaramelBytes/dsamod-cli/internal/analysis"
	"github.com/KaramelBytes/dsamod-cli/internal/utils"
)

// Chart file names written by WriteAll.
const (
	FilePlatforms          = "platforms.png"
	FileTopProfiles        = "profiles_top.png"
	FileProfilesByPlatform = "profiles_by_platform.png"
	FileDecisionCounts     = "decision_counts.png"
	FileDetectionRate      = "detection_rate.png"
	FileDecisionRate       = "decision_rate.png"
	FileSourceHeatmap      = "source_heatmap.png"
)

var errNoData = errors.New("no data to plot")

// Options controls the rendered image size.
type Options struct {
	Width  int
	Height int
	// Logger receives one event per chart; nil discards them.
	Logger *zap.Logger
}

// DefaultOptions returns a 16:9 canvas.
func DefaultOptions() Options {
	return Options{Width: 1024, Height: 576}
}

// WriteAll renders every chart of rep into dir and returns the written paths.
// Charts without data are skipped.
func WriteAll(rep *analysis.Report, dir string, opt Options) ([]string, error) {
	if opt.Width <= 0 || opt.Height <= 0 {
		d := DefaultOptions()
		opt.Width, opt.Height = d.Width, d.Height
	}
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}

	jobs := []struct {
		file   string
		render func() ([]byte, error)
	}{
		{FilePlatforms, func() ([]byte, error) {
			return Bars("Moderation actions per platform", "actions", rep.PerPlatform, opt)
		}},
		{FileTopProfiles, func() ([]byte, error) {
			return Bars("Most frequent moderator profiles", "actions", rep.TopProfiles, opt)
		}},
		{FileProfilesByPlatform, func() ([]byte, error) {
			return StackedCounts("Moderator profiles by platform", rep.ProfilesByPlatform, opt)
		}},
		{FileDecisionCounts, func() ([]byte, error) {
			return StackedCounts("Automated decision by platform", rep.DecisionCounts, opt)
		}},
		{FileDetectionRate, func() ([]byte, error) {
			return StackedRates("Automated detection rate by platform", rep.DetectionRate, opt)
		}},
		{FileDecisionRate, func() ([]byte, error) {
			return StackedRates("Automated decision rate by platform", rep.DecisionRate, opt)
		}},
		{FileSourceHeatmap, func() ([]byte, error) {
			return Heatmap("Source type rate by platform", rep.SourceRate)
		}},
	}

	var written []string
	for _, j := range jobs {
		b, err := j.render()
		if errors.Is(err, errNoData) {
			log.Debug("chart skipped", zap.String("file", j.file), zap.Error(err))
			continue
		}
		if err != nil {
			return written, fmt.Errorf("chart %s: %w", j.file, err)
		}
		p := filepath.Join(dir, j.file)
		if err := utils.SafeWriteFile(p, b); err != nil {
			return written, err
		}
		log.Debug("chart written", zap.String("path", p))
		written = append(written, p)
	}
	return written, nil
}

// Bars renders one bar per count as PNG.
func Bars(title, yName string, counts []analysis.CategoryCount, opt Options) ([]byte, error) {
	if len(counts) == 0 {
		return nil, errNoData
	}
	top := 0.0
	rotate := len(counts) > 6
	bars := make([]chart.Value, len(counts))
	for i, c := range counts {
		v := float64(c.Count)
		if v > top {
			top = v
		}
		if len(c.Value) > 14 {
			rotate = true
		}
		col := chart.GetDefaultColor(i)
		bars[i] = chart.Value{
			Label: c.Value,
			Value: v,
			Style: chart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1},
		}
	}
	// equal values would give the axis a zero range
	if top <= 0 {
		top = 1
	}
	xAxis := chart.Style{}
	if rotate {
		xAxis.TextRotationDegrees = 45
	}
	bc := chart.BarChart{
		Title:      title,
		Width:      opt.Width,
		Height:     opt.Height,
		BarWidth:   barWidth(opt.Width, len(bars)),
		BarSpacing: 10,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      xAxis,
		YAxis: chart.YAxis{
			Name:  yName,
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: bars,
	}
	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", title, err)
	}
	return buf.Bytes(), nil
}

func barWidth(width, n int) int {
	w := (width-160)/n - 10
	switch {
	case w < 8:
		return 8
	case w > 60:
		return 60
	}
	return w
}

// StackedCounts renders one stacked bar per platform with the table's counts.
func StackedCounts(title string, t *analysis.CountTable, opt Options) ([]byte, error) {
	if t == nil {
		return nil, errNoData
	}
	return stacked(title, t.Platforms, t.Categories, func(i, j int) float64 {
		return float64(t.At(i, j))
	}, opt)
}

// StackedRates renders one stacked bar per platform with the table's proportions.
func StackedRates(title string, t *analysis.RateTable, opt Options) ([]byte, error) {
	if t == nil {
		return nil, errNoData
	}
	return stacked(title, t.Platforms, t.Categories, func(i, j int) float64 {
		return t.At(i, j)
	}, opt)
}

func stacked(title string, platforms, categories []string, value func(i, j int) float64, opt Options) ([]byte, error) {
	var bars []chart.StackedBar
	for i, p := range platforms {
		total := 0.0
		vals := make([]chart.Value, len(categories))
		for j, c := range categories {
			v := value(i, j)
			total += v
			col := chart.GetDefaultColor(j)
			vals[j] = chart.Value{
				Label: c,
				Value: v,
				Style: chart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1},
			}
		}
		// bars are normalized to their total, an empty one cannot be drawn
		if total <= 0 {
			continue
		}
		bars = append(bars, chart.StackedBar{Name: p, Values: vals})
	}
	if len(bars) == 0 {
		return nil, errNoData
	}

	legend := legendWidth(categories)
	sbc := chart.StackedBarChart{
		Title:      title,
		Width:      opt.Width - legend,
		Height:     opt.Height,
		BarSpacing: 20,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		Bars:       bars,
	}
	var buf bytes.Buffer
	if err := sbc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", title, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", title, err)
	}
	return encode(withLegend(img, categories, legend))
}

const (
	swatch  = 10
	lineGap = 18
	margin  = 12
)

func legendWidth(categories []string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := 0
	for _, c := range categories {
		if n := d.MeasureString(c).Ceil(); n > w {
			w = n
		}
	}
	return w + swatch + 3*margin
}

// withLegend places img on a wider canvas and lists categories with their
// segment colors on the right.
func withLegend(img image.Image, categories []string, width int) image.Image {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()+width, b.Dy()))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, b.Dx(), b.Dy()), img, b.Min, draw.Src)

	x := b.Dx() + margin
	y := 40 + margin
	dr := &font.Drawer{Dst: out, Src: image.NewUniform(color.Black), Face: basicfont.Face7x13}
	for j, c := range categories {
		sw := image.Rect(x, y-swatch, x+swatch, y)
		draw.Draw(out, sw, image.NewUniform(chart.GetDefaultColor(j)), image.Point{}, draw.Src)
		dr.Dot = fixed.Point26_6{X: fixed.I(x + swatch + margin/2), Y: fixed.I(y)}
		dr.DrawString(c)
		y += lineGap
	}
	return out
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
