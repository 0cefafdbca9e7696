package sequencer

import (
	"math"
	"strconv"
	"strings"
)

// Tempo limits, in beats per second
const (
	DefaultBps   = 2.0
	MinBps       = 0.5
	MaxBps       = 6.0
	StepsPerBeat = 4
)

// ClampBps coerces v into [MinBps, MaxBps]. NaN and infinities become DefaultBps.
func ClampBps(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return DefaultBps
	}
	return min(MaxBps, max(MinBps, v))
}

// Clock holds the tempo. The zero value runs at DefaultBps.
// It is not safe for concurrent use; the Sequencer guards it.
type Clock struct {
	bps float64
	set bool
}

// NewClock returns a clock at bps (clamped)
func NewClock(bps float64) Clock {
	return Clock{bps: ClampBps(bps), set: true}
}

// Bps returns the tempo in beats per second
func (c *Clock) Bps() float64 {
	if !c.set {
		return DefaultBps
	}
	return c.bps
}

// Set clamps v and stores it, returning the stored value
func (c *Clock) Set(v float64) float64 {
	c.bps = ClampBps(v)
	c.set = true
	return c.bps
}

// Bpm is the display tempo
func (c *Clock) Bpm() int {
	return int(math.Round(c.Bps() * 60))
}

// StepDuration returns the length of one step in seconds
func (c *Clock) StepDuration() float64 {
	return 1 / (c.Bps() * StepsPerBeat)
}

// ParseBpm parses a tempo typed in beats per minute and returns it in bps
func ParseBpm(s string) (bps float64, ok bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return ClampBps(v / 60), true
}
