package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-drummer/config"
	"go-drummer/debug"
	"go-drummer/sequencer"
	"go-drummer/sound"
	"go-drummer/theme"
	"go-drummer/widgets"
)

// Options are the optional collaborators of the TUI. Nil fields disable the
// keys that need them.
type Options struct {
	Bank      *sound.Bank
	Kit       *sound.KitStore
	Snapshots *sequencer.Snapshots
	Config    *config.Config
	Output    string // audio output name for the header
}

type Model struct {
	Seq   *sequencer.Sequencer
	Theme *theme.Theme
	opts  Options

	track, step int // cursor

	status   string
	statusCh chan string

	editingTempo bool
	input        string

	quitting bool
}

type UpdateMsg struct{}

type StatusMsg string

const nameWidth = 22

func NewModel(seq *sequencer.Sequencer, th *theme.Theme, opts Options) Model {
	statusCh := make(chan string, 8)
	seq.OnStatus = func(msg string) {
		select {
		case statusCh <- msg:
		default:
		}
	}
	return Model{
		Seq:      seq,
		Theme:    th,
		opts:     opts,
		statusCh: statusCh,
	}
}

// WithStatus returns m showing msg on the status line
func (m Model) WithStatus(msg string) Model {
	m.status = msg
	return m
}

func ListenForUpdates(seq *sequencer.Sequencer) tea.Cmd {
	return func() tea.Msg {
		<-seq.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForStatus(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg(<-ch)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForUpdates(m.Seq),
		ListenForStatus(m.statusCh),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editingTempo {
			return m.updateTempoInput(msg), nil
		}
		return m.updateKey(msg)

	case tea.BlurMsg:
		m.Seq.Hide()

	case UpdateMsg:
		return m, ListenForUpdates(m.Seq)

	case StatusMsg:
		m.status = string(msg)
		return m, ListenForStatus(m.statusCh)
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.Seq.State()

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.Seq.Stop()
		return m, tea.Quit

	case " ", "p":
		if err := m.Seq.Toggle(); err != nil {
			m.status = err.Error()
		}

	case "up", "k":
		m.track = max(0, m.track-1)
	case "down", "j":
		m.track = min(len(st.Tracks)-1, m.track+1)
	case "left", "h":
		m.step = (m.step + sequencer.Steps - 1) % sequencer.Steps
	case "right", "l":
		m.step = (m.step + 1) % sequencer.Steps

	case "enter", "x":
		if _, err := m.Seq.ToggleCell(m.track, m.step); err != nil {
			m.status = err.Error()
		}

	case "]":
		m.cycleSound(1)
	case "[":
		m.cycleSound(-1)

	case "a":
		m.Seq.AddRow()
		m.track = len(m.Seq.State().Tracks) - 1
	case "d", "backspace":
		if err := m.Seq.RemoveRow(m.track); err != nil {
			if errors.Is(err, sequencer.ErrLastRow) {
				m.status = "Keep at least one row"
			} else {
				m.status = err.Error()
			}
		}
		m.track = min(m.track, len(m.Seq.State().Tracks)-1)
	case "c":
		m.Seq.ClearPattern()
		m.status = "Pattern cleared"

	case "+", "=":
		m.Seq.SetTempo(st.Bps + 0.25)
	case "-", "_":
		m.Seq.SetTempo(st.Bps - 0.25)
	case "t":
		m.editingTempo = true
		m.input = ""

	case "1", "2", "3", "4":
		m.setPreset(sound.Kit(msg.String()[0] - '1'))

	case "s":
		if len(st.Tracks) > 0 {
			m.Seq.Preview(st.Tracks[m.track].Sound)
		}

	case "r":
		m.reloadKit()
	case "w":
		m.saveSnapshot()
	case "L":
		m.loadSnapshot()
	}

	return m, nil
}

// updateTempoInput edits the typed tempo (in bpm)
func (m Model) updateTempoInput(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEsc:
		m.editingTempo = false
	case tea.KeyEnter:
		m.editingTempo = false
		bps, ok := sequencer.ParseBpm(m.input)
		if !ok {
			m.status = fmt.Sprintf("Invalid tempo %q", m.input)
			return m
		}
		bps = m.Seq.SetTempo(bps)
		m.status = fmt.Sprintf("Tempo %d bpm", int(bps*60+0.5))
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r >= '0' && r <= '9') || r == '.' {
				m.input += string(r)
			}
		}
	}
	return m
}

func (m *Model) cycleSound(dir int) {
	st := m.Seq.State()
	if m.track >= len(st.Tracks) {
		return
	}
	keys := sound.Keys()
	cur := 0
	for i, k := range keys {
		if k == st.Tracks[m.track].Sound {
			cur = i
		}
	}
	for n := 1; n < len(keys); n++ {
		k := keys[(cur+dir*n+len(keys)*n)%len(keys)]
		err := m.Seq.ChangeTrackSound(m.track, k)
		if err == nil {
			m.status = ""
			return
		}
		if !errors.Is(err, sequencer.ErrUnavailable) {
			m.status = err.Error()
			return
		}
	}
}

func (m *Model) setPreset(kit sound.Kit) {
	m.Seq.SetPreset(kit)
	m.status = "New rows use " + kit.Label()
	if m.opts.Config == nil {
		return
	}
	m.opts.Config.UI.Preset = kit.String()
	if err := m.opts.Config.Save(); err != nil {
		debug.Log("tui", "save config: %v", err)
		m.status = "Save failed"
	}
}

func (m *Model) reloadKit() {
	if m.opts.Kit == nil || m.opts.Bank == nil {
		return
	}
	if err := sound.LoadKit(m.opts.Kit, m.opts.Bank); err != nil {
		debug.Log("kit", "reload: %v", err)
		if errors.Is(err, sound.ErrDecode) {
			m.status = "Could not decode recording"
		} else {
			m.status = "Kit load failed"
		}
		return
	}
	m.status = "Kit reloaded"
}

func (m *Model) saveSnapshot() {
	if m.opts.Snapshots == nil {
		return
	}
	name, err := m.opts.Snapshots.Save("", m.Seq.Record())
	if err != nil {
		debug.Log("persist", "snapshot: %v", err)
		m.status = "Save failed"
		return
	}
	m.status = "Saved " + name
}

func (m *Model) loadSnapshot() {
	if m.opts.Snapshots == nil {
		return
	}
	data, err := m.opts.Snapshots.Load("")
	if err == nil {
		err = m.Seq.Restore(data)
	}
	if err != nil {
		debug.Log("persist", "load snapshot: %v", err)
		m.status = "No snapshot loaded"
		return
	}
	m.track = min(m.track, len(m.Seq.State().Tracks)-1)
	m.status = "Snapshot loaded"
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.Seq.State()
	th := m.Theme

	headerStyle := lipgloss.NewStyle().Foreground(th.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(th.Muted())
	fgStyle := lipgloss.NewStyle().Foreground(th.FG())
	cursorStyle := lipgloss.NewStyle().Foreground(th.Cursor()).Bold(true)
	statusStyle := lipgloss.NewStyle().Foreground(th.Warning())

	playState := "STOP"
	if st.Playing {
		playState = "PLAY"
	}
	output := ""
	if m.opts.Output != "" {
		output = "  out:" + m.opts.Output
	}
	header := headerStyle.Render(fmt.Sprintf("go-drummer  %s  %3dbpm (%.2f bps)  new rows: %s%s",
		playState, st.Bpm, st.Bps, st.Preset.Label(), output))

	sym := widgets.StepSymbols{
		Empty:        th.Symbols.StepEmpty,
		Active:       th.Symbols.StepActive,
		Playhead:     th.Symbols.StepPlayhead,
		CursorEmpty:  th.Symbols.CursorEmpty,
		CursorActive: th.Symbols.CursorActive,
	}

	var grid strings.Builder
	grid.WriteString(strings.Repeat(" ", nameWidth+2))
	grid.WriteString(widgets.RenderStepHeader(sequencer.Steps, sequencer.StepsPerBeat, th.Muted()))
	grid.WriteString("\n")
	for i, tr := range st.Tracks {
		color := th.Instrument(tr.Sound.Instrument)
		name := fmt.Sprintf("%-*s", nameWidth, truncate(tr.Sound.Label(), nameWidth))
		if i == m.track {
			name = cursorStyle.Render(name)
		} else {
			name = fgStyle.Render(name)
		}

		cursor := -1
		if i == m.track {
			cursor = m.step
		}
		grid.WriteString(widgets.RenderTag(color, th.Symbols.Tag))
		grid.WriteString(" ")
		grid.WriteString(name)
		grid.WriteString(widgets.RenderStepRow(widgets.StepRow{
			Steps:    st.Rows[i][:],
			Color:    color,
			Dim:      th.Muted(),
			Cursor:   cursor,
			Playhead: st.Playhead,
		}, sym, sequencer.StepsPerBeat))
		grid.WriteString("\n")
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(grid.String())
	out.WriteString("\n")

	if m.editingTempo {
		out.WriteString(fgStyle.Render(fmt.Sprintf("tempo (bpm): %s_  [enter] set  [esc] cancel", m.input)))
	} else if m.status != "" {
		out.WriteString(statusStyle.Render(m.status))
	}
	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render(widgets.RenderKeyLine(helpKeys)))
	return out.String()
}

var helpKeys = []widgets.KeyBinding{
	{Key: "space", Desc: "play"},
	{Key: "hjkl", Desc: "move"},
	{Key: "enter", Desc: "step"},
	{Key: "[ ]", Desc: "sound"},
	{Key: "a/d", Desc: "row"},
	{Key: "c", Desc: "clear"},
	{Key: "+/-/t", Desc: "tempo"},
	{Key: "1-4", Desc: "kit"},
	{Key: "w/L", Desc: "snapshot"},
	{Key: "q", Desc: "quit"},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
