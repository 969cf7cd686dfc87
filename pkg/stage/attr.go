package stage

import (
	"sort"

	"github.com/veldrane/stageview/pkg/math"
)

// FloatSample is one (time code, value) pair.
type FloatSample struct {
	Time  float64
	Value float64
}

// FloatAttr is a scalar attribute: unauthored, a constant, or time samples.
// Callers evaluate through Eval and never see which form is stored.
type FloatAttr struct {
	authored bool
	value    float64
	samples  []FloatSample
}

// ConstFloat returns a constant scalar attribute.
func ConstFloat(v float64) FloatAttr {
	return FloatAttr{authored: true, value: v}
}

// SampledFloat returns a time-sampled scalar attribute. Samples are sorted
// by time.
func SampledFloat(samples []FloatSample) FloatAttr {
	s := make([]FloatSample, len(samples))
	copy(s, samples)
	sort.Slice(s, func(i, j int) bool { return s[i].Time < s[j].Time })
	return FloatAttr{authored: true, samples: s}
}

// Authored reports whether the attribute holds a value.
func (a FloatAttr) Authored() bool { return a.authored }

// Samples returns the raw sample list, nil for constants. Serialization
// only; evaluation goes through Eval.
func (a FloatAttr) Samples() []FloatSample { return a.samples }

// Eval returns the attribute value at time t. Sampled attributes
// interpolate linearly between the bracketing samples and clamp to the
// first/last sample outside the range.
func (a FloatAttr) Eval(t float64) float64 {
	s := a.samples
	if len(s) == 0 {
		return a.value
	}
	if t <= s[0].Time {
		return s[0].Value
	}
	last := len(s) - 1
	if t >= s[last].Time {
		return s[last].Value
	}
	i := sort.Search(len(s), func(i int) bool { return s[i].Time > t })
	k0, k1 := s[i-1], s[i]
	f := (t - k0.Time) / (k1.Time - k0.Time)
	return k0.Value + f*(k1.Value-k0.Value)
}

// Vec3Sample is one (time code, vector) pair.
type Vec3Sample struct {
	Time  float64
	Value math.Vec3
}

// Vec3Attr is a vector attribute: unauthored, a constant, or time samples.
type Vec3Attr struct {
	authored bool
	value    math.Vec3
	samples  []Vec3Sample
}

// ConstVec3 returns a constant vector attribute.
func ConstVec3(v math.Vec3) Vec3Attr {
	return Vec3Attr{authored: true, value: v}
}

// SampledVec3 returns a time-sampled vector attribute. Samples are sorted
// by time.
func SampledVec3(samples []Vec3Sample) Vec3Attr {
	s := make([]Vec3Sample, len(samples))
	copy(s, samples)
	sort.Slice(s, func(i, j int) bool { return s[i].Time < s[j].Time })
	return Vec3Attr{authored: true, samples: s}
}

// Authored reports whether the attribute holds a value.
func (a Vec3Attr) Authored() bool { return a.authored }

// Samples returns the raw sample list, nil for constants.
func (a Vec3Attr) Samples() []Vec3Sample { return a.samples }

// Eval returns the attribute value at time t, interpolating and clamping
// like FloatAttr.Eval.
func (a Vec3Attr) Eval(t float64) math.Vec3 {
	s := a.samples
	if len(s) == 0 {
		return a.value
	}
	if t <= s[0].Time {
		return s[0].Value
	}
	last := len(s) - 1
	if t >= s[last].Time {
		return s[last].Value
	}
	i := sort.Search(len(s), func(i int) bool { return s[i].Time > t })
	k0, k1 := s[i-1], s[i]
	f := (t - k0.Time) / (k1.Time - k0.Time)
	return k0.Value.Lerp(k1.Value, float32(f))
}
