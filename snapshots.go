package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"go-drummer/sequencer"
)

func snapshotStore(dir string) *sequencer.Snapshots {
	return sequencer.NewSnapshots(filepath.Join(dir, "snapshots"))
}

var snapshotsCmd = &cobra.Command{
	Use:     "snapshots",
	Aliases: []string{"snap"},
	Short:   "Manage saved pattern snapshots",
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, dir, err := setup()
		if err != nil {
			return err
		}
		infos, err := snapshotStore(dir).List()
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("no snapshots")
		}
		for _, info := range infos {
			name := info.Name
			if name == "" {
				name = "-"
			}
			fmt.Printf("%s  %-20s %s\n", info.Timestamp.Format("2006-01-02 15:04:05"), name, info.Filename)
		}
		return nil
	},
}

var snapshotsDeleteCmd = &cobra.Command{
	Use:   "delete <file>",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, dir, err := setup()
		if err != nil {
			return err
		}
		return snapshotStore(dir).Delete(args[0])
	},
}

var snapshotsRenameCmd = &cobra.Command{
	Use:   "rename <file> <name>",
	Short: "Rename a snapshot, keeping its timestamp",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, dir, err := setup()
		if err != nil {
			return err
		}
		filename, err := snapshotStore(dir).Rename(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println(filename)
		return nil
	},
}

func init() {
	snapshotsCmd.AddCommand(snapshotsListCmd, snapshotsDeleteCmd, snapshotsRenameCmd)
}
