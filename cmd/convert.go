package cmd

import (
	"io"
	"os"

	"github.com/jsphweid/gabc2ly/constants"
	"github.com/jsphweid/gabc2ly/file"
	"github.com/jsphweid/gabc2ly/gabc"
	"github.com/jsphweid/gabc2ly/lily"
	"github.com/jsphweid/gabc2ly/midi"
	"github.com/jsphweid/gabc2ly/model"
	"github.com/spf13/cobra"
)

var (
	snippet  int
	outPath  string
	midiPath string
)

func init() {
	convertCmd.Flags().IntVar(&snippet, "snippet", 1, "which \\gabcsnippet of a .tex file, 1..n")
	convertCmd.Flags().StringVarP(&outPath, "out", "o", "", "write lilypond here instead of stdout")
	convertCmd.Flags().StringVar(&midiPath, "midi", "", "also write a midi file")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <file.gabc|file.tex>",
	Short: "Converts gabc to lilypond",
	Long:  `Converts the gabc in a .gabc file, or one \gabcsnippet of a .tex file, to lilypond`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return convertFile(args[0], snippet, outPath, midiPath, cmd.OutOrStdout())
	},
}

func decoderOptions() []gabc.Option {
	opts := []gabc.Option{gabc.WithLogger(logger())}
	if keepAccidental {
		opts = append(opts, gabc.KeepAccidentalAcrossClef())
	}
	return opts
}

// decodeText turns notation text, as found in a .gabc body, into notes.
func decodeText(text string) ([]*model.Note, error) {
	tokens, err := file.ParseParentheses(text)
	if err != nil {
		return nil, err
	}
	return gabc.NewDecoder(decoderOptions()...).Decode(tokens)
}

// createOut opens the lilypond output file.
var createOut = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

func convertFile(path string, snippet int, out string, midiOut string, stdout io.Writer) (err error) {
	text, err := file.FindGabc(path, snippet)
	if err != nil {
		return err
	}
	notes, err := decodeText(text)
	if err != nil {
		return err
	}

	w := stdout
	if out != "" {
		f, cerr := createOut(out)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	if err := lily.Render(w, notes, constants.GetTempo()); err != nil {
		return err
	}

	if midiOut != "" {
		return midi.WriteFile(midiOut, notes, float64(constants.GetTempo()))
	}
	return nil
}
