package midi

import (
	"errors"
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-drummer/debug"
)

// PadEvent is a press on a grid controller. Row 0 is the bottom row of the
// 8x8 grid, row 8 the top button row and column 8 the side buttons.
type PadEvent struct {
	Row, Col int
	Velocity uint8
}

// LEDUpdate sets one pad's color
type LEDUpdate struct {
	Row, Col int
	Color    [3]uint8
	Channel  uint8 // 0 static, 1 flash, 2 pulse
}

// Launchpad X SysEx bodies
var (
	programmerMode = []byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x00, 0x7F}
	fullBrightness = []byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x08, 0x7F}
)

// Launchpad drives a Novation Launchpad X in programmer mode
type Launchpad struct {
	name   string
	send   Sender
	stop   func()
	closer func() error

	mu     sync.Mutex
	pads   chan PadEvent
	closed bool
}

// NewLaunchpad switches the device behind send into programmer mode
func NewLaunchpad(name string, send Sender) *Launchpad {
	lp := &Launchpad{
		name: name,
		send: send,
		pads: make(chan PadEvent, 32),
	}
	lp.emit(gomidi.SysEx(programmerMode))
	lp.emit(gomidi.SysEx(fullBrightness))
	return lp
}

// OpenLaunchpad finds a Launchpad whose port names contain name
// ("launchpad" when empty) and starts listening to its pads
func OpenLaunchpad(name string) (*Launchpad, error) {
	if name == "" {
		name = "launchpad"
	}
	ins, outs, err := scan()
	if err != nil {
		return nil, err
	}
	in, out := matchPort(portNames(ins), name), matchPort(portNames(outs), name)
	if in < 0 || out < 0 {
		return nil, fmt.Errorf("midi: no controller matching %q", name)
	}

	send, err := gomidi.SendTo(outs[out])
	if err != nil {
		return nil, fmt.Errorf("open controller output: %w", err)
	}
	lp := NewLaunchpad(ins[in].String(), send)
	lp.closer = outs[out].Close

	stop, err := gomidi.ListenTo(ins[in], func(msg gomidi.Message, timestampms int32) {
		lp.handle(msg)
	})
	if err != nil {
		lp.Close()
		return nil, fmt.Errorf("open controller input: %w", err)
	}
	lp.stop = stop
	debug.Log("midi", "controller %q", lp.name)
	return lp, nil
}

func (lp *Launchpad) Name() string {
	return lp.name
}

// Pads delivers pad presses; it is closed by Close
func (lp *Launchpad) Pads() <-chan PadEvent {
	return lp.pads
}

func (lp *Launchpad) handle(msg gomidi.Message) {
	var channel, note, velocity, cc, value uint8
	row, col := -1, -1
	switch {
	case msg.GetNoteOn(&channel, &note, &velocity) && velocity > 0:
		row, col = noteToRowCol(note)
	case msg.GetControlChange(&channel, &cc, &value) && value > 0:
		row, col = ccToRowCol(cc)
		velocity = value
	}
	if row < 0 {
		return
	}

	lp.mu.Lock()
	defer lp.mu.Unlock()
	if lp.closed {
		return
	}
	select {
	case lp.pads <- PadEvent{Row: row, Col: col, Velocity: velocity}:
	default:
	}
}

// SetLEDBatch sends one NoteOn per update, colored with the nearest palette entry
func (lp *Launchpad) SetLEDBatch(updates []LEDUpdate) error {
	var errs []error
	for _, u := range updates {
		note := rowColToNote(u.Row, u.Col)
		if err := lp.emit(gomidi.NoteOn(u.Channel, note, mapRGBToLaunchpad(u.Color))); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (lp *Launchpad) emit(msg gomidi.Message) error {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	if lp.closed {
		return nil
	}
	return lp.send(msg)
}

// Close darkens the pads, stops listening and closes the port
func (lp *Launchpad) Close() error {
	var off []LEDUpdate
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			if row == 8 && col == 8 {
				continue // no LED at 8,8
			}
			off = append(off, LEDUpdate{Row: row, Col: col})
		}
	}
	lp.SetLEDBatch(off)

	if lp.stop != nil {
		lp.stop()
	}
	lp.mu.Lock()
	if !lp.closed {
		lp.closed = true
		close(lp.pads)
	}
	lp.mu.Unlock()

	if lp.closer != nil {
		return lp.closer()
	}
	return nil
}

// mapRGBToLaunchpad finds the nearest Launchpad X palette color for an RGB value
func mapRGBToLaunchpad(rgb [3]uint8) uint8 {
	// {velocity, R, G, B}
	palette := [][4]uint8{
		{0, 0, 0, 0},         // off
		{1, 60, 60, 60},      // dim white
		{5, 255, 0, 0},       // red
		{7, 180, 60, 60},     // dim red
		{9, 255, 100, 0},     // orange
		{11, 180, 80, 40},    // dim orange
		{13, 255, 200, 0},    // yellow
		{19, 0, 100, 0},      // dim green
		{21, 0, 255, 0},      // bright green
		{37, 0, 200, 200},    // cyan
		{43, 40, 60, 120},    // dim blue
		{45, 0, 100, 255},    // blue
		{49, 150, 0, 200},    // purple
		{53, 255, 80, 180},   // pink
		{84, 255, 150, 50},   // bright orange
		{119, 255, 255, 255}, // white
	}

	best := uint8(0)
	bestDist := 1 << 30
	r, g, b := int(rgb[0]), int(rgb[1]), int(rgb[2])
	for _, p := range palette {
		pr, pg, pb := int(p[1]), int(p[2]), int(p[3])
		dist := (r-pr)*(r-pr) + (g-pg)*(g-pg) + (b-pb)*(b-pb)
		if dist < bestDist {
			bestDist = dist
			best = p[0]
		}
	}
	return best
}

// Launchpad X programmer mode layout:
// grid row 0 (bottom) is notes 11-18, row 7 is 81-88, the side column is
// 19, 29 ... 89 and the top row is CC 91-98.

func rowColToNote(row, col int) uint8 {
	if row == 8 {
		return uint8(91 + col)
	}
	return uint8((row+1)*10 + col + 1)
}

func noteToRowCol(note uint8) (row, col int) {
	if note >= 91 && note <= 98 {
		return 8, int(note - 91)
	}
	row = int(note/10) - 1
	col = int(note%10) - 1
	if row < 0 || row > 7 || col < 0 || col > 8 {
		return -1, -1
	}
	return row, col
}

func ccToRowCol(cc uint8) (row, col int) {
	if cc >= 91 && cc <= 98 {
		return 8, int(cc - 91)
	}
	return -1, -1
}
