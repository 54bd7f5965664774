package figure

import (
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// angleTicks builds the X-axis tick set for a [angleMin, angleMax] window.
// Narrow windows (span < 15°) get a labeled tick per integer degree. Wider
// windows get labeled major ticks every 10°, aligned to the multiple of 10
// at or below angleMin, with unlabeled minor grid lines at the intervening
// integer degrees.
func angleTicks(angleMin, angleMax float64) ([]chart.Tick, []chart.GridLine) {
	if angleMax < angleMin {
		return nil, nil
	}
	if angleMax-angleMin < 15 {
		var ticks []chart.Tick
		for d := int(math.Ceil(angleMin)); float64(d) <= angleMax; d++ {
			ticks = append(ticks, chart.Tick{Value: float64(d), Label: strconv.Itoa(d)})
		}
		return ticks, nil
	}
	var ticks []chart.Tick
	var minors []chart.GridLine
	start := int(math.Floor(angleMin/10) * 10)
	for d := start; float64(d) <= angleMax; d++ {
		if float64(d) < angleMin {
			// keeps majors aligned to the 10° grid without drawing the
			// anchor outside the forced display range
			continue
		}
		if d%10 == 0 {
			ticks = append(ticks, chart.Tick{Value: float64(d), Label: strconv.Itoa(d)})
		} else {
			minors = append(minors, chart.GridLine{IsMinor: true, Value: float64(d)})
		}
	}
	return ticks, minors
}
