package cmd

import (
	"fmt"

	"github.com/jsphweid/gabc2ly/file"
	"github.com/spf13/cobra"
)

func init() {
	textCmd.Flags().IntVar(&snippet, "snippet", 1, "which \\gabcsnippet of a .tex file, 1..n")
	rootCmd.AddCommand(textCmd)
}

var textCmd = &cobra.Command{
	Use:   "text <file.gabc|file.tex>",
	Short: "Prints the lyrics without notation",
	Long:  `Prints the lyrics without notation`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := file.FindGabc(args[0], snippet)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), file.RemoveParens(text))
		return nil
	},
}
