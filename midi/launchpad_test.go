package midi

import (
	"testing"

	qt "github.com/frankban/quicktest"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestLaunchpadEntersProgrammerMode(t *testing.T) {
	c := qt.New(t)
	r := &recorder{}
	NewLaunchpad("LPX", r.send)
	c.Assert(r.msgs, qt.DeepEquals, []gomidi.Message{
		gomidi.SysEx(programmerMode),
		gomidi.SysEx(fullBrightness),
	})
}

func TestLaunchpadPads(t *testing.T) {
	c := qt.New(t)
	lp := NewLaunchpad("LPX", (&recorder{}).send)

	lp.handle(gomidi.NoteOn(0, 81, 100))
	lp.handle(gomidi.NoteOn(0, 18, 0)) // released
	lp.handle(gomidi.NoteOff(0, 18))
	lp.handle(gomidi.NoteOn(0, 29, 90))
	lp.handle(gomidi.ControlChange(0, 91, 127))
	lp.handle(gomidi.ControlChange(0, 91, 0))
	lp.handle(gomidi.NoteOn(0, 5, 100)) // off the grid

	want := []PadEvent{
		{Row: 7, Col: 0, Velocity: 100},
		{Row: 1, Col: 8, Velocity: 90},
		{Row: 8, Col: 0, Velocity: 127},
	}
	for _, w := range want {
		c.Assert(<-lp.Pads(), qt.Equals, w)
	}
	c.Assert(lp.Close(), qt.IsNil)
	_, open := <-lp.Pads()
	c.Assert(open, qt.IsFalse)

	// presses after close are dropped
	lp.handle(gomidi.NoteOn(0, 81, 100))
}

func TestLaunchpadLEDs(t *testing.T) {
	c := qt.New(t)
	r := &recorder{}
	lp := NewLaunchpad("LPX", r.send)
	r.msgs = nil

	err := lp.SetLEDBatch([]LEDUpdate{
		{Row: 0, Col: 0, Color: [3]uint8{255, 255, 255}},
		{Row: 7, Col: 3, Color: [3]uint8{250, 5, 0}},
		{Row: 8, Col: 1, Color: [3]uint8{0, 0, 0}, Channel: 2},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(r.msgs, qt.DeepEquals, []gomidi.Message{
		gomidi.NoteOn(0, 11, 119),
		gomidi.NoteOn(0, 84, 5),
		gomidi.NoteOn(2, 92, 0),
	})

	r.msgs = nil
	c.Assert(lp.Close(), qt.IsNil)
	c.Assert(r.msgs, qt.HasLen, 80)
	for _, m := range r.msgs {
		c.Assert(m, qt.HasLen, 3)
		c.Assert(m[0]&0xF0, qt.Equals, byte(0x90))
		c.Assert(m[2], qt.Equals, byte(0))
	}

	r.msgs = nil
	c.Assert(lp.SetLEDBatch([]LEDUpdate{{Row: 0, Col: 0}}), qt.IsNil)
	c.Assert(r.msgs, qt.HasLen, 0)
}

func TestPadNoteMapping(t *testing.T) {
	c := qt.New(t)
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			if row == 8 && col == 8 {
				continue
			}
			gotRow, gotCol := noteToRowCol(rowColToNote(row, col))
			c.Assert([2]int{gotRow, gotCol}, qt.Equals, [2]int{row, col})
		}
	}
}
