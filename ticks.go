package trkhits

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks picks round major ticks with minor ticks in between. A
// degenerate range yields a single labelled tick.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	if t.NSuggestedTicks < 2 {
		t.NSuggestedTicks = 4
	}

	if max <= min {
		return []plot.Tick{{Value: min, Label: formatFloatTick(min, -1)}}
	}

	tens := math.Pow10(int(math.Floor(math.Log10(max - min))))
	n := (max - min) / tens
	for n < float64(t.NSuggestedTicks)-1 {
		tens /= 10
		n = (max - min) / tens
	}

	majorMult := int(n / float64(t.NSuggestedTicks-1))
	switch majorMult {
	case 0:
		majorMult = 1
	case 7:
		majorMult = 6
	case 9:
		majorMult = 8
	}
	majorDelta := float64(majorMult) * tens

	var ticks []plot.Tick
	prec := -int(math.Floor(math.Log10(majorDelta)))
	if prec < 0 {
		prec = 0
	}
	eps := majorDelta * 1e-9
	for k := math.Ceil(min/majorDelta - 1e-9); k*majorDelta <= max+eps; k++ {
		v := round(k*majorDelta, prec)
		ticks = append(ticks, plot.Tick{Value: v, Label: formatFloatTick(v, -1)})
	}

	minorDelta := majorDelta / 2
	switch majorMult {
	case 3, 6:
		minorDelta = majorDelta / 3
	case 5:
		minorDelta = majorDelta / 5
	}

	nMajor := len(ticks)
	for k := math.Ceil(min/minorDelta - 1e-9); k*minorDelta <= max+eps; k++ {
		v := round(k*minorDelta, prec+1)
		found := false
		for _, major := range ticks[:nMajor] {
			if math.Abs(major.Value-v) < minorDelta/2 {
				found = true
				break
			}
		}
		if !found {
			ticks = append(ticks, plot.Tick{Value: v})
		}
	}
	return ticks
}

// LayerTicks labels every integer in range, or every Step-th one.
type LayerTicks struct {
	Step int
}

func (t LayerTicks) Ticks(min, max float64) []plot.Tick {
	step := t.Step
	if step < 1 {
		step = 1
	}

	var ticks []plot.Tick
	for i := int(math.Ceil(min)); float64(i) <= max; i++ {
		tick := plot.Tick{Value: float64(i)}
		if i%step == 0 {
			tick.Label = strconv.Itoa(i)
		}
		ticks = append(ticks, tick)
	}
	return ticks
}

func round(x float64, prec int) float64 {
	if x == 0 {
		// Make sure zero is returned
		// without the negative bit set.
		return 0
	}
	// Fast path for positive precision on integers.
	if prec >= 0 && x == math.Trunc(x) {
		return x
	}
	pow := math.Pow10(prec)
	intermed := x * pow
	if math.IsInf(intermed, 0) {
		return x
	}
	if x < 0 {
		x = math.Ceil(intermed - 0.5)
	} else {
		x = math.Floor(intermed + 0.5)
	}

	if x == 0 {
		return 0
	}

	return x / pow
}

func formatFloatTick(v float64, prec int) string {
	return strconv.FormatFloat(v, 'g', prec, 64)
}
