package sequencer

import (
	"errors"
	"fmt"

	"go-drummer/sound"
)

// Steps is the length of every pattern row
const Steps = 16

var (
	// ErrIndex is returned for a track or step outside the pattern
	ErrIndex = errors.New("index out of range")
	// ErrLastRow is returned when removing the only remaining row
	ErrLastRow = errors.New("cannot remove the last row")
)

// Track is one pattern row's sound assignment
type Track struct {
	Sound sound.Key
}

// Pattern is the step grid: one row of Steps cells per track. Tracks and rows
// are only ever resized together.
type Pattern struct {
	tracks []Track
	rows   [][Steps]bool
}

// NewPattern returns an empty pattern with one row per key
func NewPattern(keys ...sound.Key) *Pattern {
	p := &Pattern{}
	for _, k := range keys {
		p.AddRow(k)
	}
	return p
}

// DefaultPattern is the four tracks of kit with every step off. Kits other
// than the built-in ones fall back to classic.
func DefaultPattern(kit sound.Kit) *Pattern {
	if kit >= sound.NumKits {
		kit = sound.Classic
	}
	return NewPattern(sound.KitKeys(kit)...)
}

// Len returns the number of tracks (and rows)
func (p *Pattern) Len() int {
	return len(p.tracks)
}

func (p *Pattern) check(track int) error {
	if track < 0 || track >= len(p.tracks) {
		return fmt.Errorf("track %d: %w", track, ErrIndex)
	}
	return nil
}

// Track returns track i
func (p *Pattern) Track(i int) (Track, error) {
	if err := p.check(i); err != nil {
		return Track{}, err
	}
	return p.tracks[i], nil
}

// Tracks returns a copy of the track list
func (p *Pattern) Tracks() []Track {
	return append([]Track(nil), p.tracks...)
}

// Rows returns a copy of the grid
func (p *Pattern) Rows() [][Steps]bool {
	return append([][Steps]bool(nil), p.rows...)
}

// Cell reports whether a step is on; out of range cells are off
func (p *Pattern) Cell(track, step int) bool {
	if p.check(track) != nil || step < 0 || step >= Steps {
		return false
	}
	return p.rows[track][step]
}

// Set turns a step on or off
func (p *Pattern) Set(track, step int, on bool) error {
	if err := p.check(track); err != nil {
		return err
	}
	if step < 0 || step >= Steps {
		return fmt.Errorf("step %d: %w", step, ErrIndex)
	}
	p.rows[track][step] = on
	return nil
}

// Toggle flips a step and returns its new value
func (p *Pattern) Toggle(track, step int) (bool, error) {
	on := !p.Cell(track, step)
	if err := p.Set(track, step, on); err != nil {
		return false, err
	}
	return on, nil
}

// AddRow appends a track with an empty row
func (p *Pattern) AddRow(key sound.Key) {
	p.tracks = append(p.tracks, Track{Sound: key})
	p.rows = append(p.rows, [Steps]bool{})
}

// RemoveRow deletes track i and its row. The last row cannot be removed.
func (p *Pattern) RemoveRow(i int) error {
	if err := p.check(i); err != nil {
		return err
	}
	if len(p.tracks) <= 1 {
		return ErrLastRow
	}
	p.tracks = append(p.tracks[:i], p.tracks[i+1:]...)
	p.rows = append(p.rows[:i], p.rows[i+1:]...)
	return nil
}

// SetSound reassigns track i
func (p *Pattern) SetSound(i int, key sound.Key) error {
	if err := p.check(i); err != nil {
		return err
	}
	p.tracks[i].Sound = key
	return nil
}

// Clear turns every step off, keeping the tracks
func (p *Pattern) Clear() {
	clear(p.rows)
}

// Active returns the sounds of every track on at step, in track order
func (p *Pattern) Active(step int) []sound.Key {
	if step < 0 || step >= Steps {
		return nil
	}
	var keys []sound.Key
	for i, row := range p.rows {
		if row[step] {
			keys = append(keys, p.tracks[i].Sound)
		}
	}
	return keys
}
