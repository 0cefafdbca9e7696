// Package controller plays the pattern from a grid controller. Each track takes
// two pad rows (steps 1-8 above 9-16), so a page shows four tracks.
package controller

import (
	"context"
	"slices"
	"sync"
	"time"

	"go-drummer/debug"
	"go-drummer/midi"
	"go-drummer/sequencer"
	"go-drummer/theme"
)

// TracksPerPage is how many tracks fit on the 8x8 grid
const TracksPerPage = 4

// refreshRate catches edits made from the keyboard
const refreshRate = 50 * time.Millisecond

// Top row buttons
const (
	buttonPlay     = 0
	buttonPageUp   = 2
	buttonPageDown = 3
)

var white = [3]uint8{255, 255, 255}

// LEDs is a device the grid can light
type LEDs interface {
	SetLEDBatch(updates []midi.LEDUpdate) error
}

type pad [2]int // row, col

// Grid maps pads to pattern cells and keeps the LEDs in sync with the pattern
// and the playhead
type Grid struct {
	seq  *sequencer.Sequencer
	leds LEDs
	th   *theme.Theme

	mu       sync.Mutex
	page     int // first track shown
	playhead int
	prev     map[pad][3]uint8
}

func New(seq *sequencer.Sequencer, leds LEDs, th *theme.Theme) *Grid {
	return &Grid{
		seq:      seq,
		leds:     leds,
		th:       th,
		playhead: -1,
		prev:     make(map[pad][3]uint8),
	}
}

// padToCell returns the page slot and step under a grid pad
func padToCell(row, col int) (slot, step int, ok bool) {
	if row < 0 || row > 7 || col < 0 || col > 7 {
		return 0, 0, false
	}
	slot = (7 - row) / 2
	step = (7-row)%2*8 + col
	return slot, step, true
}

func cellToPad(slot, step int) pad {
	return pad{7 - slot*2 - step/8, step % 8}
}

// Run handles presses until pads closes or ctx is done
func (g *Grid) Run(ctx context.Context, pads <-chan midi.PadEvent) {
	ticker := time.NewTicker(refreshRate)
	defer ticker.Stop()

	g.Refresh()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-pads:
			if !ok {
				return
			}
			g.Press(ev)
		case <-ticker.C:
			g.Refresh()
		}
	}
}

// Press toggles the cell under a pad, or runs a top row button
func (g *Grid) Press(ev midi.PadEvent) {
	if ev.Row == 8 {
		g.button(ev.Col)
	} else if slot, step, ok := padToCell(ev.Row, ev.Col); ok {
		g.mu.Lock()
		track := g.page + slot
		g.mu.Unlock()
		if _, err := g.seq.ToggleCell(track, step); err != nil {
			debug.Log("controller", "pad %d,%d: %v", ev.Row, ev.Col, err)
		}
	}
	g.Refresh()
}

func (g *Grid) button(col int) {
	switch col {
	case buttonPlay:
		if err := g.seq.Toggle(); err != nil {
			debug.Log("controller", "play: %v", err)
		}
	case buttonPageUp:
		g.mu.Lock()
		g.page = max(0, g.page-TracksPerPage)
		g.mu.Unlock()
	case buttonPageDown:
		n := len(g.seq.State().Tracks)
		g.mu.Lock()
		if g.page+TracksPerPage < n {
			g.page += TracksPerPage
		}
		g.mu.Unlock()
	}
}

// SetPlayhead lights the column being heard (-1 for none). It is meant to be
// the sequencer's OnPlayhead.
func (g *Grid) SetPlayhead(step int) {
	g.mu.Lock()
	g.playhead = step
	g.mu.Unlock()
	g.Refresh()
}

// Refresh sends only the LEDs that changed since the last refresh
func (g *Grid) Refresh() error {
	st := g.seq.State()

	g.mu.Lock()
	defer g.mu.Unlock()

	// rows removed from under the current page
	for g.page > 0 && g.page >= len(st.Tracks) {
		g.page -= TracksPerPage
	}

	next := g.render(st)
	var updates []midi.LEDUpdate
	for p, color := range next {
		if prev, ok := g.prev[p]; !ok || prev != color {
			updates = append(updates, midi.LEDUpdate{Row: p[0], Col: p[1], Color: color})
		}
	}
	for p := range g.prev {
		if _, ok := next[p]; !ok {
			updates = append(updates, midi.LEDUpdate{Row: p[0], Col: p[1]})
		}
	}
	g.prev = next
	if len(updates) == 0 {
		return nil
	}

	slices.SortFunc(updates, func(a, b midi.LEDUpdate) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	debug.Log("controller", "leds: batch=%d", len(updates))
	return g.leds.SetLEDBatch(updates)
}

// render returns the lit pads; pads not in the map are off. Caller holds g.mu.
func (g *Grid) render(st sequencer.State) map[pad][3]uint8 {
	leds := make(map[pad][3]uint8)
	for slot := 0; slot < TracksPerPage; slot++ {
		track := g.page + slot
		if track >= len(st.Tracks) {
			break
		}
		color := [3]uint8(g.th.InstrumentRGB(st.Tracks[track].Sound.Instrument))
		for step, on := range st.Rows[track] {
			p := cellToPad(slot, step)
			switch {
			case on && step == g.playhead:
				leds[p] = white
			case on:
				leds[p] = color
			case step == g.playhead:
				leds[p] = g.th.Palette.Lookup(theme.RoleMuted)
			}
		}
	}

	if st.Playing {
		leds[pad{8, buttonPlay}] = g.th.Palette.Lookup(theme.RoleSuccess)
	} else {
		leds[pad{8, buttonPlay}] = g.th.Palette.Lookup(theme.RoleWarning)
	}
	if g.page > 0 {
		leds[pad{8, buttonPageUp}] = g.th.Palette.Lookup(theme.RoleAccent)
	}
	if g.page+TracksPerPage < len(st.Tracks) {
		leds[pad{8, buttonPageDown}] = g.th.Palette.Lookup(theme.RoleAccent)
	}
	return leds
}
