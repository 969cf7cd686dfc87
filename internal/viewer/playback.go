package viewer

import (
	"math"

	"github.com/veldrane/stageview/pkg/stage"
)

// Playback tracks the current time code of a stage and advances it in
// real time. Rate is the stage's timeCodesPerSecond.
type Playback struct {
	Start   float64
	End     float64
	Rate    float64
	Time    float64
	Playing bool
}

// SetStage resets playback to the stage's authored time range, paused at
// the start.
func (p *Playback) SetStage(st *stage.Stage) {
	p.Start = st.StartTime()
	p.End = st.EndTime()
	p.Rate = st.TimeCodesPerSecond()
	p.Time = p.Start
	p.Playing = false
}

// Animated reports whether the stage has a time range to play.
func (p *Playback) Animated() bool {
	return p.End > p.Start
}

// Advance moves time forward by dt seconds while playing, wrapping from
// the end of the range back to the start.
func (p *Playback) Advance(dt float64) {
	if !p.Playing || !p.Animated() {
		return
	}
	p.Time += dt * p.Rate
	if p.Time > p.End {
		span := p.End - p.Start
		p.Time = p.Start + math.Mod(p.Time-p.Start, span)
	}
}

// Step jumps by whole time codes while paused, clamped to the range.
func (p *Playback) Step(codes float64) {
	if p.Playing || !p.Animated() {
		return
	}
	p.Seek(p.Time + codes)
}

// Seek jumps to a time code, clamped to the range.
func (p *Playback) Seek(t float64) {
	if t < p.Start {
		t = p.Start
	}
	if t > p.End {
		t = p.End
	}
	p.Time = t
}
