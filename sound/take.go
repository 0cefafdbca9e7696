package sound

import (
	"math"
	"time"
)

// Edge selects which end of a trim window is being moved
type Edge int

const (
	TrimStart Edge = iota
	TrimEnd
)

// trimPush is how far the opposite edge moves when the window collapses
const trimPush = 0.1

// AdjustTrim moves one edge of the window [start, end] to value within a
// recording of length dur. Values are clamped to [0, dur]. When the window
// would become shorter than MinPlayable the other edge is pushed away.
func AdjustTrim(which Edge, value, start, end, dur float64) (float64, float64) {
	if math.IsNaN(value) {
		return start, end
	}
	v := clamp(value, 0, dur)
	start = clamp(start, 0, dur)
	end = clamp(end, 0, dur)

	if which == TrimStart {
		start = v
	} else {
		end = v
	}

	if end <= start+MinPlayable {
		if which == TrimStart {
			end = clamp(start+trimPush, 0, dur)
		} else {
			start = clamp(end-trimPush, 0, dur)
		}
	}
	return start, end
}

// Take is a finished recording waiting to be trimmed and saved into a kit
// slot. Capture itself happens outside this package; a Take starts from the
// encoded bytes it produced.
type Take struct {
	Data   []byte
	Mime   string
	Sample *Sample

	start, end float64
}

// NewTake decodes a recording. The trim window starts as the whole take.
func NewTake(data []byte, mime string) (*Take, error) {
	s, err := DecodeWAV(data)
	if err != nil {
		return nil, err
	}
	if mime == "" {
		mime = "audio/wav"
	}
	t := &Take{Data: data, Mime: mime, Sample: s}
	t.start, t.end = 0, s.Duration()
	return t, nil
}

// Duration returns the length of the take in seconds
func (t *Take) Duration() float64 {
	return t.Sample.Duration()
}

// SetTrim moves one trim edge
func (t *Take) SetTrim(which Edge, value float64) {
	t.start, t.end = AdjustTrim(which, value, t.start, t.end, t.Duration())
}

// Trim returns the trim window to save; end is at least start+MinPlayable
func (t *Take) Trim() (start, end float64) {
	dur := t.Duration()
	start = clamp(t.start, 0, dur)
	end = clamp(t.end, 0, dur)
	return start, max(start+MinPlayable, end)
}

// Entry builds the kit store record for saving this take into inst
func (t *Take) Entry(inst Instrument, now time.Time) KitEntry {
	start, end := t.Trim()
	return KitEntry{
		Key:      inst.String(),
		Mime:     t.Mime,
		StartSec: start,
		EndSec:   end,
		SavedAt:  now,
		Data:     t.Data,
	}
}

// Trimmed returns the take's sample with the current trim applied
func (t *Take) Trimmed() *Sample {
	start, end := t.Trim()
	return &Sample{Data: t.Sample.Data, SampleRate: t.Sample.SampleRate, StartSec: start, EndSec: end}
}
