package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"go-drummer/config"
	"go-drummer/controller"
	"go-drummer/debug"
	"go-drummer/midi"
	"go-drummer/sequencer"
	"go-drummer/sound"
	"go-drummer/sound/device"
	"go-drummer/theme"
	"go-drummer/tui"
)

var (
	// Command-line configuration
	flags struct {
		dir      string
		headless bool
		midiPort string
		ctrl     string
		debug    bool
		palette  string
	}
)

var rootCmd = &cobra.Command{
	Use:   "go-drummer",
	Short: "A terminal step sequencer drum machine",
	Long: `go-drummer plays a 16-step drum pattern through a lookahead scheduler.

Rows pick their sound from three synthesized kits or from a kit of your own
recordings. The pattern and tempo are saved as you edit.`,
	SilenceUsage: true,
	RunE:         runDrummer,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.dir, "dir", "",
		"data directory (default ~/.config/go-drummer)")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false,
		"write debug.log to the data directory")
	rootCmd.Flags().BoolVar(&flags.headless, "headless", false,
		"run without an audio device")
	rootCmd.Flags().StringVar(&flags.midiPort, "midi-port", "",
		"also send triggers to this MIDI output port")
	rootCmd.Flags().StringVar(&flags.ctrl, "controller", "",
		"edit the pattern from a Launchpad whose port name contains this")
	rootCmd.Flags().StringVar(&flags.palette, "palette", "",
		"GIMP palette file to color the grid with")

	rootCmd.AddCommand(kitCmd, snapshotsCmd, portsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the config and turns on logging for every command
func setup() (*config.Config, string, error) {
	cfg, err := config.Load(flags.dir)
	if err != nil {
		return nil, "", fmt.Errorf("load config: %w", err)
	}
	dir := cfg.Dir()
	if dir == "" {
		dir = "."
	}
	if flags.debug {
		if err := debug.Enable(dir); err != nil {
			return nil, "", fmt.Errorf("enable debug log: %w", err)
		}
	}
	return cfg, dir, nil
}

func kitStore(dir string) *sound.KitStore {
	return sound.NewKitStore(filepath.Join(dir, "kit"))
}

func runDrummer(cmd *cobra.Command, args []string) error {
	cfg, dir, err := setup()
	if err != nil {
		return err
	}
	defer debug.Disable()

	palette := theme.Default()
	if flags.palette != "" {
		if palette, err = theme.LoadGPL(flags.palette); err != nil {
			return err
		}
	}
	th := theme.New(palette)

	// audio (a missing device is not fatal)
	var status string
	engine, err := device.NewEngine(cfg.Audio.SampleRate, cfg.Audio.MasterGain, flags.headless || cfg.Audio.Headless)
	if err != nil {
		status = "Audio unavailable, running headless"
	}
	defer engine.Close()

	bank := sound.NewBank(engine.Mixer)
	kit := kitStore(dir)
	if err := sound.LoadKit(kit, bank); err != nil {
		debug.Log("kit", "load: %v", err)
		status = "Some recordings could not be loaded"
	}

	// ports are closed before the driver
	defer midi.CloseDriver()

	var sink sequencer.SoundBank = bank
	port := flags.midiPort
	if port == "" && cfg.MIDI.Enabled {
		port = cfg.MIDI.PortName
	}
	if port != "" {
		out, err := midi.Open(port, cfg.MIDI.Channel, engine.Now)
		if err != nil {
			debug.Log("midi", "open: %v", err)
			status = "MIDI port not found: " + port
		} else {
			defer out.Close()
			sink = sequencer.Banks{bank, out}
		}
	}

	preset, _ := sound.ParseKit(cfg.UI.Preset)
	seq := sequencer.New(engine, sink, sequencer.Options{
		Preset: preset,
		Bps:    cfg.UI.LastBps,
	})

	store := sequencer.NewFileStore(dir)
	if data, err := store.Load(); err != nil {
		debug.Log("persist", "load: %v", err)
	} else if data != nil {
		if err := seq.Restore(data); err != nil {
			debug.Log("persist", "restore: %v", err)
			status = "Saved pattern was unreadable, starting fresh"
		}
	}
	saver := sequencer.NewSaver(store, cfg.Debounce())
	saver.OnError = func(err error) {
		debug.Log("persist", "save: %v", err)
	}
	seq.SetSaver(saver)

	ctrlPort := flags.ctrl
	if ctrlPort == "" {
		ctrlPort = cfg.MIDI.Controller
	}
	if ctrlPort != "" {
		lp, err := midi.OpenLaunchpad(ctrlPort)
		if err != nil {
			debug.Log("controller", "open: %v", err)
			status = "Controller not found: " + ctrlPort
		} else {
			defer lp.Close()
			grid := controller.New(seq, lp, th)
			seq.OnPlayhead = grid.SetPlayhead
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go grid.Run(ctx, lp.Pads())
		}
	}

	m := tui.NewModel(seq, th, tui.Options{
		Bank:      bank,
		Kit:       kit,
		Snapshots: snapshotStore(dir),
		Config:    cfg,
		Output:    engine.Output(),
	})
	if status != "" {
		m = m.WithStatus(status)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	_, runErr := p.Run()

	if err := seq.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "save pattern: %v\n", err)
	}
	cfg.UI.LastBps = seq.State().Bps
	if err := cfg.Save(); err != nil {
		debug.Log("config", "save: %v", err)
	}
	if debug.Enabled() {
		fmt.Fprintf(os.Stderr, "debug log: %s\n", filepath.Join(dir, "debug.log"))
	}
	return runErr
}
