package birch

import (
	"math/rand/v2"

	"github.com/tanema/gween/ease"
)

// RangedNumericValue is a value picked at random from [Low, LowMax] when a
// particle or emitter cycle starts. Inactive values are ignored by the
// emitter unless the property is always applied.
type RangedNumericValue struct {
	Active bool
	Low    float32
	LowMax float32
}

// NewLowValue returns a random value in [Low, LowMax].
func (v *RangedNumericValue) NewLowValue() float32 {
	return randRange(v.Low, v.LowMax)
}

// SetLow sets both ends of the range to value.
func (v *RangedNumericValue) SetLow(value float32) {
	v.Low, v.LowMax = value, value
}

// SetLowRange sets the range.
func (v *RangedNumericValue) SetLowRange(min, max float32) {
	v.Low, v.LowMax = min, max
}

// scale multiplies the range by s.
func (v *RangedNumericValue) scale(s float32) {
	v.Low *= s
	v.LowMax *= s
}

// ScaledNumericValue is a property that varies over a particle's life (or
// an emitter's duration). A start value is drawn from the low range and an
// end value from the high range; the curve defined by Scaling and Timeline
// blends between them.
//
// Timeline holds ascending percentages in [0, 1] and Scaling the curve
// value at each one. Between points the curve is linear, or follows Ease
// when set. With Relative, the high value is an offset added to the low
// value rather than an absolute end value.
type ScaledNumericValue struct {
	RangedNumericValue
	High     float32
	HighMax  float32
	Scaling  []float32
	Timeline []float32
	Relative bool
	Ease     ease.TweenFunc
}

// NewHighValue returns a random value in [High, HighMax].
func (v *ScaledNumericValue) NewHighValue() float32 {
	return randRange(v.High, v.HighMax)
}

// SetHigh sets both ends of the high range to value.
func (v *ScaledNumericValue) SetHigh(value float32) {
	v.High, v.HighMax = value, value
}

// SetHighRange sets the high range.
func (v *ScaledNumericValue) SetHighRange(min, max float32) {
	v.High, v.HighMax = min, max
}

func (v *ScaledNumericValue) scale(s float32) {
	v.RangedNumericValue.scale(s)
	v.High *= s
	v.HighMax *= s
}

// Scale returns the curve value at percent. An empty curve is constant 1.
func (v *ScaledNumericValue) Scale(percent float32) float32 {
	if len(v.Scaling) == 0 || len(v.Timeline) == 0 {
		return 1
	}
	end := -1
	n := min(len(v.Scaling), len(v.Timeline))
	for i := 1; i < n; i++ {
		if v.Timeline[i] > percent {
			end = i
			break
		}
	}
	if end == -1 {
		return v.Scaling[n-1]
	}
	start := end - 1
	startValue := v.Scaling[start]
	startTime := v.Timeline[start]
	span := v.Timeline[end] - startTime
	if v.Ease != nil {
		return v.Ease(percent-startTime, startValue, v.Scaling[end]-startValue, span)
	}
	return startValue + (v.Scaling[end]-startValue)*((percent-startTime)/span)
}

// GradientColorValue is an RGB tint that varies over a particle's life.
// Colors holds one RGB triple per Timeline point.
type GradientColorValue struct {
	Colors   []float32
	Timeline []float32
}

// Color returns the tint at percent. An empty gradient is white.
func (v *GradientColorValue) Color(percent float32) [3]float32 {
	n := min(len(v.Colors)/3, len(v.Timeline))
	if n == 0 {
		return [3]float32{1, 1, 1}
	}
	start, end := 0, -1
	for i := 1; i < n; i++ {
		if v.Timeline[i] > percent {
			end = i
			break
		}
		start = i
	}
	s := start * 3
	c := [3]float32{v.Colors[s], v.Colors[s+1], v.Colors[s+2]}
	if end == -1 {
		return c
	}
	startTime := v.Timeline[start]
	f := (percent - startTime) / (v.Timeline[end] - startTime)
	e := end * 3
	c[0] += (v.Colors[e] - c[0]) * f
	c[1] += (v.Colors[e+1] - c[1]) * f
	c[2] += (v.Colors[e+2] - c[2]) * f
	return c
}

// SpawnShape is the area new particles appear in, centered on the emitter.
type SpawnShape uint8

const (
	SpawnPoint SpawnShape = iota
	SpawnLine
	SpawnSquare
	SpawnEllipse
)

// SpawnEllipseSide limits edge spawning on an ellipse to one half.
type SpawnEllipseSide uint8

const (
	SideBoth SpawnEllipseSide = iota
	SideTop
	SideBottom
)

// SpawnShapeValue selects the spawn shape. With Edges, ellipse particles
// spawn on the outline and, unless the angle value is active, move away
// from the center.
type SpawnShapeValue struct {
	Shape SpawnShape
	Edges bool
	Side  SpawnEllipseSide
}

func randRange(min, max float32) float32 {
	if min == max {
		return min
	}
	return min + rand.Float32()*(max-min)
}
