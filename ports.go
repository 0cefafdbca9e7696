package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"go-drummer/midi"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI ports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer midi.CloseDriver()

		fmt.Printf("(waiting up to %s...)\n", midi.ScanTimeout)
		ins, outs, err := midi.Ports()
		if errors.Is(err, midi.ErrTimeout) {
			fmt.Println("\nTIMEOUT! The MIDI service is not answering.")
			fmt.Println("Fix (macOS): sudo killall coreaudiod midiserver")
			return err
		}
		if err != nil {
			return err
		}

		fmt.Println("=== MIDI Input Ports ===")
		for i, p := range ins {
			fmt.Printf("  %d: %s\n", i, p)
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, p := range outs {
			fmt.Printf("  %d: %s\n", i, p)
		}
		return nil
	},
}
