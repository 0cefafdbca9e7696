package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StepSymbols are the glyphs a step row is drawn with
type StepSymbols struct {
	Empty, Active, Playhead rune
	CursorEmpty, CursorActive rune
}

// StepRow describes one pattern row to draw
type StepRow struct {
	Steps    []bool
	Color    lipgloss.Color // color of active steps
	Dim      lipgloss.Color // color of empty steps and beat markers
	Cursor   int            // step under the cursor, -1 for none
	Playhead int            // step being heard, -1 when stopped
}

// RenderStepRow draws a row of steps, grouped by beat
func RenderStepRow(row StepRow, sym StepSymbols, stepsPerBeat int) string {
	on := lipgloss.NewStyle().Foreground(row.Color)
	off := lipgloss.NewStyle().Foreground(row.Dim)
	head := lipgloss.NewStyle().Foreground(row.Color).Bold(true).Reverse(true)

	var out strings.Builder
	for i, active := range row.Steps {
		if i > 0 && stepsPerBeat > 0 && i%stepsPerBeat == 0 {
			out.WriteString(off.Render("│"))
		}

		r := sym.Empty
		switch {
		case i == row.Cursor && active:
			r = sym.CursorActive
		case i == row.Cursor:
			r = sym.CursorEmpty
		case active:
			r = sym.Active
		case i == row.Playhead:
			r = sym.Playhead
		}

		style := off
		if active {
			style = on
		}
		if i == row.Playhead {
			style = head
		}
		out.WriteString(style.Render(string(r)))
		out.WriteString(" ")
	}
	return strings.TrimRight(out.String(), " ")
}

// RenderStepHeader numbers the steps to line up with RenderStepRow
func RenderStepHeader(steps, stepsPerBeat int, color lipgloss.Color) string {
	style := lipgloss.NewStyle().Foreground(color)
	var out strings.Builder
	for i := 0; i < steps; i++ {
		if i > 0 && stepsPerBeat > 0 && i%stepsPerBeat == 0 {
			out.WriteString(" ")
		}
		label := " "
		if stepsPerBeat > 0 && i%stepsPerBeat == 0 {
			label = fmt.Sprint(i/stepsPerBeat + 1)
		}
		out.WriteString(label)
		out.WriteString(" ")
	}
	return style.Render(strings.TrimRight(out.String(), " "))
}

// RenderTag renders a small colored block in front of a track name
func RenderTag(color lipgloss.Color, r rune) string {
	return lipgloss.NewStyle().Foreground(color).Render(string(r))
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderKeyLine formats key bindings on one line: "space:play  c:clear"
func RenderKeyLine(keys []KeyBinding) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.Key + ":" + k.Desc
	}
	return strings.Join(parts, "  ")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
