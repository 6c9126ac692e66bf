package cmd

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	debug          bool
	keepAccidental bool
)

var rootCmd = &cobra.Command{
	Use:   "gabc2ly",
	Short: "Converts gabc chant notation to lilypond",
	Long: `Converts Gregorio gabc notation, from a .gabc file or a \gabcsnippet
in a .tex file, into a lilypond score that can be engraved or rendered to
midi so the tune can be heard.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose decoder logging")
	rootCmd.PersistentFlags().BoolVar(&keepAccidental, "keep-accidental", false, "keep a flat across clef changes")
}

func logger() *log.Logger {
	if debug {
		return log.New(os.Stderr, "gabc: ", log.Lmsgprefix)
	}
	return log.New(io.Discard, "", 0)
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
