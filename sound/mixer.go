package sound

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"
)

// Handle refers to a voice scheduled on a Mixer
type Handle struct {
	start     int64
	v         Voice
	done      bool
	fading    bool
	fadeStart int64
	fadeLen   int64
}

// Mixer mixes scheduled voices into a mono stream. Its sample counter is the
// audio clock: Now reports the time of the next sample to be rendered, and
// voices start exactly at the sample their start time maps to.
type Mixer struct {
	sampleRate int
	gain       float64

	mu      sync.Mutex
	voices  []*Handle
	scratch []float32

	pos atomic.Int64
}

// NewMixer creates a mixer. gain is the master gain applied to the sum.
func NewMixer(sampleRate int, gain float64) *Mixer {
	return &Mixer{
		sampleRate: sampleRate,
		gain:       gain,
	}
}

// SampleRate returns the mixer's rate in samples per second
func (m *Mixer) SampleRate() int {
	return m.sampleRate
}

// Now returns the audio clock in seconds
func (m *Mixer) Now() float64 {
	return float64(m.pos.Load()) / float64(m.sampleRate)
}

func (m *Mixer) toSamples(t float64) int64 {
	return int64(math.Round(t * float64(m.sampleRate)))
}

// Schedule adds a voice that starts at absolute time at (seconds). Times in
// the past start on the next rendered sample.
func (m *Mixer) Schedule(v Voice, at float64) *Handle {
	h := &Handle{start: m.toSamples(at), v: v}
	m.mu.Lock()
	m.voices = append(m.voices, h)
	m.mu.Unlock()
	return h
}

// Release fades a voice linearly to zero over fade seconds from time at, then
// stops it. A voice that has not started by the end of the fade never sounds.
func (m *Mixer) Release(h *Handle, at, fade float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h.done {
		return
	}
	start := m.toSamples(at)
	if h.fading && h.fadeStart+h.fadeLen <= start+m.toSamples(fade) {
		return // already ending sooner
	}
	h.fading = true
	h.fadeStart = start
	h.fadeLen = max(1, m.toSamples(fade))
}

// Ringing reports whether a voice is still scheduled or sounding
func (m *Mixer) Ringing(h *Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !h.done
}

// Active returns the number of voices not yet finished
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Render mixes the next len(out) samples and advances the clock
func (m *Mixer) Render(out []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pos := m.pos.Load()
	for i := range out {
		var sum float64
		for _, h := range m.voices {
			if h.done || pos < h.start {
				continue
			}
			g := 1.0
			if h.fading && pos >= h.fadeStart {
				g = 1 - float64(pos-h.fadeStart)/float64(h.fadeLen)
				if g <= 0 {
					h.done = true
					continue
				}
			}
			val, done := h.v.Sample()
			if done {
				h.done = true
				continue
			}
			sum += val * g
		}
		sum *= m.gain
		if sum > 1 {
			sum = 1
		} else if sum < -1 {
			sum = -1
		}
		out[i] = float32(sum)
		pos++
	}
	m.pos.Store(pos)

	// Voices that were released before they started never reach their start.
	live := m.voices[:0]
	for _, h := range m.voices {
		if !h.done && h.fading && pos >= h.fadeStart+h.fadeLen {
			h.done = true
		}
		if !h.done {
			live = append(live, h)
		}
	}
	clear(m.voices[len(live):])
	m.voices = live
}

// Read implements io.Reader for oto.Player (mono float32 little endian)
func (m *Mixer) Read(p []byte) (int, error) {
	n := len(p) / 4
	if cap(m.scratch) < n {
		m.scratch = make([]float32, n)
	}
	buf := m.scratch[:n]
	m.Render(buf)
	for i, s := range buf {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(s))
	}
	return n * 4, nil
}
