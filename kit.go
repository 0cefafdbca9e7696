package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"go-drummer/sound"
	"go-drummer/sound/device"
)

var importFlags struct {
	start, end float64
}

var previewFlags struct {
	start, end float64
}

var kitCmd = &cobra.Command{
	Use:   "kit",
	Short: "Manage the recorded kit",
}

var kitImportCmd = &cobra.Command{
	Use:   "import <kick|snare|hat|perc> <file.wav>",
	Short: "Save a recording into a kit slot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, ok := sound.ParseInstrument(args[0])
		if !ok {
			return fmt.Errorf("unknown instrument %q", args[0])
		}
		_, dir, err := setup()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		take, err := sound.NewTake(data, mime.TypeByExtension(filepath.Ext(args[1])))
		if err != nil {
			return fmt.Errorf("%s: %w", args[1], err)
		}
		if cmd.Flags().Changed("start") {
			take.SetTrim(sound.TrimStart, importFlags.start)
		}
		if cmd.Flags().Changed("end") {
			take.SetTrim(sound.TrimEnd, importFlags.end)
		}

		if err := kitStore(dir).Put(take.Entry(inst, time.Now())); err != nil {
			return err
		}
		start, end := take.Trim()
		fmt.Printf("%s: %.2fs take, playing %.2f-%.2f\n", inst.Label(), take.Duration(), start, end)
		return nil
	},
}

var kitClearCmd = &cobra.Command{
	Use:   "clear [kick|snare|hat|perc]",
	Short: "Empty one slot, or the whole recorded kit",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, dir, err := setup()
		if err != nil {
			return err
		}
		store := kitStore(dir)
		if len(args) == 0 {
			return store.Clear()
		}
		inst, ok := sound.ParseInstrument(args[0])
		if !ok {
			return fmt.Errorf("unknown instrument %q", args[0])
		}
		return store.Delete(inst)
	},
}

var kitListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show what is recorded in each slot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, dir, err := setup()
		if err != nil {
			return err
		}
		store := kitStore(dir)
		for i := sound.Instrument(0); i < sound.NumInstruments; i++ {
			e, err := store.Get(i)
			switch {
			case err != nil:
				fmt.Printf("%-6s error: %v\n", i, err)
			case e == nil:
				fmt.Printf("%-6s -\n", i)
			default:
				fmt.Printf("%-6s %s  %.2f-%.2fs  %s\n", i, e.Mime, e.StartSec, e.EndSec,
					e.SavedAt.Local().Format("2006-01-02 15:04"))
			}
		}
		return nil
	},
}

var kitPreviewCmd = &cobra.Command{
	Use:   "preview <kick|snare|hat|perc|file.wav>",
	Short: "Play a recorded slot, or a file, once with its trim applied",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, dir, err := setup()
		if err != nil {
			return err
		}
		take, err := openTake(kitStore(dir), args[0])
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("start") {
			take.SetTrim(sound.TrimStart, previewFlags.start)
		}
		if cmd.Flags().Changed("end") {
			take.SetTrim(sound.TrimEnd, previewFlags.end)
		}

		engine, err := device.NewEngine(cfg.Audio.SampleRate, cfg.Audio.MasterGain, cfg.Audio.Headless)
		if err != nil {
			fmt.Println(err)
		}
		defer engine.Close()

		trimmed := take.Trimmed()
		_, dur := trimmed.Window()
		sound.NewBank(engine.Mixer).Preview(trimmed)
		fmt.Printf("playing %.2f-%.2f of %.2fs\n", trimmed.StartSec, trimmed.EndSec, take.Duration())
		time.Sleep(time.Duration((dur + 0.1) * float64(time.Second)))
		return nil
	},
}

// openTake loads a kit slot by instrument name, or else a WAV file
func openTake(store *sound.KitStore, arg string) (*sound.Take, error) {
	if inst, ok := sound.ParseInstrument(arg); ok {
		e, err := store.Get(inst)
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, fmt.Errorf("nothing recorded for %s", inst)
		}
		return e.Take()
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, err
	}
	take, err := sound.NewTake(data, mime.TypeByExtension(filepath.Ext(arg)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", arg, err)
	}
	return take, nil
}

func init() {
	kitPreviewCmd.Flags().Float64Var(&previewFlags.start, "start", 0, "trim start in seconds")
	kitPreviewCmd.Flags().Float64Var(&previewFlags.end, "end", 0, "trim end in seconds")
	kitImportCmd.Flags().Float64Var(&importFlags.start, "start", 0, "trim start in seconds")
	kitImportCmd.Flags().Float64Var(&importFlags.end, "end", 0, "trim end in seconds")
	kitCmd.AddCommand(kitImportCmd, kitPreviewCmd, kitClearCmd, kitListCmd)
}
