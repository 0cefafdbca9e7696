package sound

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"go-drummer/debug"
)

// ErrNoSample is returned when a recorded slot has nothing to play
var ErrNoSample = errors.New("no sample recorded")

// Bank turns sound keys into voices on a mixer. Synthesized kits are looked
// up in a recipe table; the recorded kit plays whatever samples were loaded
// into its slots.
type Bank struct {
	mixer   *Mixer
	recipes map[Key]Recipe

	mu      sync.Mutex
	rng     *rand.Rand
	samples [NumInstruments]*Sample
	ringing [NumInstruments][]*Handle
}

// NewBank creates a bank using the built-in recipes
func NewBank(m *Mixer) *Bank {
	return NewBankWithRecipes(m, Recipes)
}

// NewBankWithRecipes creates a bank with a custom recipe table
func NewBankWithRecipes(m *Mixer, recipes map[Key]Recipe) *Bank {
	seed := uint64(time.Now().UnixNano())
	return &Bank{
		mixer:   m,
		recipes: recipes,
		rng:     rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

// Now returns the mixer's clock
func (b *Bank) Now() float64 {
	return b.mixer.Now()
}

// Available reports whether key can make a sound
func (b *Bank) Available(key Key) bool {
	if !key.Valid() {
		return false
	}
	if key.Kit == Recorded {
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.samples[key.Instrument] != nil
	}
	_, ok := b.recipes[key]
	return ok
}

// SetSample loads (or, with nil, empties) a recorded slot
func (b *Bank) SetSample(inst Instrument, s *Sample) {
	if inst >= NumInstruments {
		return
	}
	if s != nil {
		s = s.Resampled(b.mixer.SampleRate())
	}
	b.mu.Lock()
	b.samples[inst] = s
	b.mu.Unlock()
}

// Sample returns the sample loaded into a recorded slot
func (b *Bank) Sample(inst Instrument) (*Sample, error) {
	if inst >= NumInstruments {
		return nil, ErrNoSample
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.samples[inst] == nil {
		return nil, ErrNoSample
	}
	return b.samples[inst], nil
}

// Trigger schedules key to sound at absolute time at. Unknown keys and empty
// recorded slots are ignored. A recorded instrument is monophonic: any voice
// of the same slot still ringing is faded out when the new one starts.
func (b *Bank) Trigger(key Key, at float64) {
	if !key.Valid() {
		return
	}
	if key.Kit == Recorded {
		b.triggerSample(key.Instrument, at)
		return
	}
	r, ok := b.recipes[key]
	if !ok {
		debug.Log("sound", "no recipe for %s", key)
		return
	}
	b.mu.Lock()
	buf := r.Render(b.mixer.SampleRate(), b.rng)
	b.mu.Unlock()
	b.mixer.Schedule(&bufferVoice{buf: buf}, at)
}

func (b *Bank) triggerSample(inst Instrument, at float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.samples[inst]
	if s == nil {
		return
	}

	live := b.ringing[inst][:0]
	for _, h := range b.ringing[inst] {
		if b.mixer.Ringing(h) {
			b.mixer.Release(h, at, fadeOut)
			live = append(live, h)
		}
	}
	h := b.mixer.Schedule(newSampleVoice(s, b.mixer.SampleRate()), at)
	b.ringing[inst] = append(live, h)
}

// Ringing returns how many voices of a recorded slot are still sounding
func (b *Bank) Ringing(inst Instrument) int {
	if inst >= NumInstruments {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, h := range b.ringing[inst] {
		if b.mixer.Ringing(h) {
			n++
		}
	}
	return n
}

// previewDelay is how far ahead a preview is scheduled
const previewDelay = 0.005

// Preview plays a sample right away, outside any slot
func (b *Bank) Preview(s *Sample) {
	if s == nil {
		return
	}
	s = s.Resampled(b.mixer.SampleRate())
	b.mixer.Schedule(newSampleVoice(s, b.mixer.SampleRate()), b.mixer.Now()+previewDelay)
}
