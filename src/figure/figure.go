// Package figure turns uploaded pattern files plus display parameters into
// a renderable multi-series chart. Every build is a pure function of its
// inputs: the viewer calls it with a fresh snapshot on each interaction.
package figure

import (
	"math"

	"github.com/dshirya/xrd-tool/src/pattern"
)

// Display defaults, matching the viewer's reset behavior.
const (
	DefaultAngleMin  = 10
	DefaultAngleMax  = 90
	DefaultIntensity = 100

	// sigma is the fixed Gaussian smoothing width. Near-negligible on
	// purpose: it only rounds off digitization artifacts.
	sigma = 0.1
)

// UploadedFile is one pattern file as handed over by the UI runtime,
// transport decoding already done.
type UploadedFile struct {
	Filename string
	Content  string
}

// Params is the snapshot of all display controls for one build.
// Background and Intensity are aligned to the file list by index.
type Params struct {
	AngleMin   float64
	AngleMax   float64
	GlobalSep  float64
	Background []float64
	Intensity  []float64

	ShowLegend  bool
	Transparent bool // export background mode
}

// DefaultParams returns the control values the viewer starts with.
func DefaultParams() Params {
	return Params{AngleMin: DefaultAngleMin, AngleMax: DefaultAngleMax, ShowLegend: true}
}

// SyncSliders re-aligns the per-file slider arrays to n files. Arrays of
// the wrong length are replaced wholesale with default-filled ones (0 for
// background, 100 for intensity) rather than partially preserved.
func (p *Params) SyncSliders(n int) {
	if len(p.Background) != n {
		p.Background = make([]float64, n)
	}
	if len(p.Intensity) != n {
		p.Intensity = make([]float64, n)
		for i := range p.Intensity {
			p.Intensity[i] = DefaultIntensity
		}
	}
}

// Series is one rendered trace: label plus parallel x/y columns.
type Series struct {
	Label string
	X     []float64
	Y     []float64
}

// Build derives one Series per file that parses and has at least one point
// inside the angle window. Files that fail either condition are silently
// skipped. File order is preserved; the index feeds the i*GlobalSep
// stacking term, so upload order determines default vertical stacking.
func Build(p Params, files []UploadedFile) []Series {
	out := make([]Series, 0, len(files))
	for i, f := range files {
		s, err := pattern.Parse(f.Content)
		if err != nil {
			continue
		}
		x, y := window(s, p.AngleMin, p.AngleMax)
		if len(x) == 0 {
			continue
		}
		y = gaussianSmooth(y, sigma)
		normalize(y)
		bg := valueAt(p.Background, i, 0)
		intensity := valueAt(p.Intensity, i, DefaultIntensity)
		offset := bg + float64(i)*p.GlobalSep
		for j := range y {
			y[j] = y[j]*intensity + offset
		}
		out = append(out, Series{Label: pattern.StripExtension(f.Filename), X: x, Y: y})
	}
	return out
}

// window copies the points with angleMin <= angle <= angleMax. The
// inclusive form also drops NaN angles, which fail both comparisons.
func window(s pattern.Series, angleMin, angleMax float64) (x, y []float64) {
	for i, a := range s.Angles {
		if a >= angleMin && a <= angleMax {
			x = append(x, a)
			y = append(y, s.Intensities[i])
		}
	}
	return x, y
}

// normalize rescales ys to [0,1] in place. A flat series maps to all
// zeros instead of dividing by zero.
func normalize(ys []float64) {
	if len(ys) == 0 {
		return
	}
	lo, hi := ys[0], ys[0]
	for _, v := range ys[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	for i := range ys {
		if span == 0 {
			ys[i] = ys[i] - lo
		} else {
			ys[i] = (ys[i] - lo) / span
		}
	}
}

// gaussianSmooth applies a 1-D Gaussian convolution with reflect boundary
// handling, preserving length. The kernel radius follows the usual
// int(4*sigma + 0.5) truncation, so tiny sigmas reduce to a copy.
func gaussianSmooth(ys []float64, sigma float64) []float64 {
	n := len(ys)
	radius := int(4*sigma + 0.5)
	if radius <= 0 || n == 0 {
		out := make([]float64, n)
		copy(out, ys)
		return out
	}
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for k := -radius; k <= radius; k++ {
		v := math.Exp(-float64(k*k) / (2 * sigma * sigma))
		kernel[k+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var acc float64
		for k := -radius; k <= radius; k++ {
			acc += kernel[k+radius] * ys[reflectIndex(i+k, n)]
		}
		out[i] = acc
	}
	return out
}

// reflectIndex maps an out-of-range index back into [0,n) using the
// (c b a | a b c) reflection convention.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - i - 1
		}
	}
	return i
}

func valueAt(vs []float64, i int, fallback float64) float64 {
	if i < len(vs) {
		return vs[i]
	}
	return fallback
}
