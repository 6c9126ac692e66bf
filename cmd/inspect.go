package cmd

import (
	"fmt"

	"github.com/jsphweid/gabc2ly/lily"
	"github.com/jsphweid/gabc2ly/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a midi file",
	Long:  `Lists the notes of a midi file, eg one written by convert --midi`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "tempo: %v\n", midi.Tempo(s))
		for _, p := range midi.PlayedNotes(s) {
			quarters := float64(p.Ticks) / midi.TicksPerQuarter
			fmt.Fprintf(out, "%6d %-6s %.2f\n", p.Start, lily.Pitch(p.Key), quarters)
		}
		return nil
	},
}
