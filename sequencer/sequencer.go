package sequencer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-drummer/debug"
	"go-drummer/sound"
)

// ErrUnavailable is returned when a sound or the audio engine cannot be used
var ErrUnavailable = errors.New("unavailable")

// SoundBank schedules sounds on the audio clock
type SoundBank interface {
	// Trigger plays key at absolute time at. Unknown keys are ignored.
	Trigger(key sound.Key, at float64)
	Available(key sound.Key) bool
}

// AudioEngine provides the clock triggers are scheduled against
type AudioEngine interface {
	Now() float64
	Resume() error
}

// Banks sends every trigger to several banks. The first bank decides
// availability; the rest are extra sinks such as MIDI.
type Banks []SoundBank

func (b Banks) Trigger(key sound.Key, at float64) {
	for _, bank := range b {
		bank.Trigger(key, at)
	}
}

func (b Banks) Available(key sound.Key) bool {
	return len(b) > 0 && b[0].Available(key)
}

// Options configures a Sequencer. Zero values use the defaults.
type Options struct {
	Preset sound.Kit
	Bps    float64

	// After defers playhead updates; time.AfterFunc when nil
	After func(d time.Duration, f func())
}

// Sequencer owns a pattern, its tempo and the transport that plays it.
// All methods are safe for concurrent use.
type Sequencer struct {
	engine AudioEngine
	bank   SoundBank
	saver  *Saver

	// OnPlayhead is called with each step as it is heard, and -1 on stop.
	// OnStatus receives user-facing messages. Set both before Start.
	OnPlayhead func(step int)
	OnStatus   func(msg string)

	// Notify TUI of updates
	UpdateChan chan struct{}

	mu      sync.Mutex
	pattern *Pattern
	clock   Clock
	preset  sound.Kit

	// transport
	playing      bool
	currentStep  int
	nextNoteTime float64
	playhead     int
	gen          uint64
	cancel       context.CancelFunc
	done         chan struct{}

	tickInterval time.Duration
	after        afterHook
}

// New creates a stopped sequencer with the default pattern of the preset kit
func New(engine AudioEngine, bank SoundBank, opts Options) *Sequencer {
	preset := opts.Preset
	if preset >= sound.NumKits {
		preset = sound.Classic
	}
	s := &Sequencer{
		engine:       engine,
		bank:         bank,
		UpdateChan:   make(chan struct{}, 1),
		pattern:      DefaultPattern(sound.Classic),
		clock:        NewClock(DefaultBps),
		preset:       preset,
		playhead:     -1,
		tickInterval: TickInterval,
		after:        afterFunc,
	}
	if opts.Bps != 0 {
		s.clock.Set(opts.Bps)
	}
	if opts.After != nil {
		s.after = opts.After
	}
	return s
}

// SetSaver persists every change through sv. Failed background writes post
// "Save failed"; the pattern in memory is kept as is.
func (s *Sequencer) SetSaver(sv *Saver) {
	if sv != nil {
		prev := sv.OnError
		sv.OnError = func(err error) {
			if prev != nil {
				prev(err)
			}
			s.status("Save failed")
		}
	}
	s.mu.Lock()
	s.saver = sv
	s.mu.Unlock()
}

// State is a copy of everything the UI renders
type State struct {
	Playing  bool
	Playhead int // -1 when stopped
	Bps      float64
	Bpm      int
	Preset   sound.Kit
	Tracks   []Track
	Rows     [][Steps]bool
}

// State returns a snapshot of the sequencer
func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Playing:  s.playing,
		Playhead: s.playhead,
		Bps:      s.clock.Bps(),
		Bpm:      s.clock.Bpm(),
		Preset:   s.preset,
		Tracks:   s.pattern.Tracks(),
		Rows:     s.pattern.Rows(),
	}
}

// Record returns the persisted form of the current pattern
func (s *Sequencer) Record() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewRecord(s.pattern, s.clock.Bps())
}

// Restore replaces the pattern (and tempo, if present) from persisted data.
// Undecodable data leaves the sequencer unchanged.
func (s *Sequencer) Restore(data []byte) error {
	res, err := LoadRecord(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.pattern = res.Pattern
	if res.HasBps {
		s.clock.Set(res.Bps)
	}
	s.mu.Unlock()
	if res.Dropped > 0 {
		debug.Log("persist", "restore dropped %d unknown tracks", res.Dropped)
	}
	s.notify()
	return nil
}

// Preset returns the kit new rows are created from
func (s *Sequencer) Preset() sound.Kit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preset
}

// SetPreset selects the kit new rows are created from
func (s *Sequencer) SetPreset(kit sound.Kit) {
	if kit >= sound.NumKits {
		return
	}
	s.mu.Lock()
	s.preset = kit
	s.mu.Unlock()
	s.notify()
}

// UI events

// ClearPattern stops playback and turns every step off
func (s *Sequencer) ClearPattern() {
	s.Stop()
	s.mu.Lock()
	s.pattern.Clear()
	s.persist()
	s.mu.Unlock()
	s.notify()
}

// AddRow stops playback and appends a kick row from the preset kit
func (s *Sequencer) AddRow() {
	s.Stop()
	s.mu.Lock()
	s.pattern.AddRow(sound.Key{Kit: s.preset, Instrument: sound.Kick})
	s.persist()
	s.mu.Unlock()
	s.notify()
}

// RemoveRow deletes a row. The last row is never removed.
func (s *Sequencer) RemoveRow(i int) error {
	s.mu.Lock()
	err := s.pattern.RemoveRow(i)
	if err == nil {
		s.persist()
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// ChangeTrackSound reassigns a row, previewing the new sound when stopped.
// Recorded sounds can only be chosen once something is recorded for them.
func (s *Sequencer) ChangeTrackSound(i int, key sound.Key) error {
	if !key.Valid() {
		return fmt.Errorf("sound %s: %w", key, ErrUnavailable)
	}
	if key.Kit == sound.Recorded && !s.bank.Available(key) {
		return fmt.Errorf("%s (record first): %w", key.Label(), ErrUnavailable)
	}

	s.mu.Lock()
	err := s.pattern.SetSound(i, key)
	if err == nil {
		s.persist()
		s.preview(key)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// ToggleCell flips a step and returns its new value, previewing the row's
// sound when stopped
func (s *Sequencer) ToggleCell(track, step int) (bool, error) {
	s.mu.Lock()
	on, err := s.pattern.Toggle(track, step)
	if err == nil {
		s.persist()
		s.preview(s.pattern.tracks[track].Sound)
	}
	s.mu.Unlock()
	if err != nil {
		return false, err
	}
	s.notify()
	return on, nil
}

// SetTempo clamps bps and applies it from the next scheduled step.
// It returns the stored value.
func (s *Sequencer) SetTempo(bps float64) float64 {
	s.mu.Lock()
	v := s.clock.Set(bps)
	s.persist()
	s.mu.Unlock()
	s.notify()
	return v
}

// Preview plays key right away if the transport is stopped
func (s *Sequencer) Preview(key sound.Key) {
	s.mu.Lock()
	s.preview(key)
	s.mu.Unlock()
}

// preview is a no-op while playing. Caller holds s.mu.
func (s *Sequencer) preview(key sound.Key) {
	if s.playing {
		return
	}
	if err := s.engine.Resume(); err != nil {
		debug.Log("sound", "preview: %v", err)
		return
	}
	s.bank.Trigger(key, s.engine.Now()+PreviewOffset)
}

// persist queues the current pattern for saving. Caller holds s.mu.
func (s *Sequencer) persist() {
	if s.saver == nil {
		return
	}
	data, err := json.Marshal(NewRecord(s.pattern, s.clock.Bps()))
	if err != nil {
		debug.Log("persist", "marshal: %v", err)
		return
	}
	s.saver.Save(data)
}

// Flush writes any pending change immediately
func (s *Sequencer) Flush() error {
	s.mu.Lock()
	sv := s.saver
	s.mu.Unlock()
	if sv == nil {
		return nil
	}
	return sv.Flush()
}

// Close stops playback and flushes pending writes
func (s *Sequencer) Close() error {
	s.Stop()
	s.mu.Lock()
	sv := s.saver
	s.mu.Unlock()
	if sv == nil {
		return nil
	}
	return sv.Close()
}

func (s *Sequencer) status(msg string) {
	debug.Log("transport", "status: %s", msg)
	if s.OnStatus != nil {
		s.OnStatus(msg)
	}
}

// notify wakes the TUI without blocking
func (s *Sequencer) notify() {
	select {
	case s.UpdateChan <- struct{}{}:
	default:
	}
}
