package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"go-drummer/sound"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	StepEmpty    rune // · step off
	StepActive   rune // ● step on
	StepPlayhead rune // ▶ playhead on an empty step

	CursorEmpty  rune // ○ cursor on empty
	CursorActive rune // ◉ cursor on active

	Tag rune // ▌ track color tag
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			StepEmpty:    '·',
			StepActive:   '●',
			StepPlayhead: '▶',

			CursorEmpty:  '○',
			CursorActive: '◉',

			Tag: '▌',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0  // deep purple
	RoleSurface = 0.1  // dark purple
	RoleMuted   = 0.25 // purple-magenta
	RoleFG      = 0.45 // pink-purple (readable)
	RoleAccent  = 0.5  // vivid magenta
	RoleCursor  = 0.6  // rose pink
	RoleActive  = 0.85 // amber
	RoleWarning = 0.75 // orange
	RoleSuccess = 1.0  // bright yellow
)

// instrument tag colors
var instrumentRoles = [sound.NumInstruments]float64{
	sound.Kick:  0.55,
	sound.Snare: 0.75,
	sound.Hat:   0.95,
	sound.Perc:  0.35,
}

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Cursor() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleCursor))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

// Instrument is the track color for an instrument; every kit shares it
func (t *Theme) Instrument(i sound.Instrument) lipgloss.Color {
	if i >= sound.NumInstruments {
		return t.FG()
	}
	return rgbToLipgloss(t.Palette.Lookup(instrumentRoles[i]))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}

// InstrumentRGB is Instrument as raw RGB, for hardware LEDs
func (t *Theme) InstrumentRGB(i sound.Instrument) RGB {
	if i >= sound.NumInstruments {
		return t.Palette.Lookup(RoleFG)
	}
	return t.Palette.Lookup(instrumentRoles[i])
}
