// Package uihelpers holds the viewer's pure layout helpers so they can be
// tested headlessly, without a Fyne driver.
package uihelpers

import "strconv"

// ComputeChartDimensions applies the width/height clamp rules used for the
// interactive chart. Input is the desired raw width (e.g. canvas width);
// the height keeps a roughly 4:3 plot.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 640 {
		w = 640
	}
	h := int(float32(w) * 0.75)
	if h < 300 {
		h = 300
	}
	if h > 900 {
		h = 900
	}
	return w, h
}

// ParseRatio parses the width/height ratio entry values. Anything
// unparseable or non-positive falls back to 4:3.
func ParseRatio(wText, hText string) (float64, float64) {
	w, errW := strconv.ParseFloat(wText, 64)
	h, errH := strconv.ParseFloat(hText, 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 4, 3
	}
	return w, h
}
