package lily

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/gabc2ly/constants"
	"github.com/jsphweid/gabc2ly/model"
)

// ornaments always take up one quarter: three eighths in the time of two
const ornamentDuration Duration = 1

// FromNote converts a decoded note. An ornamented note ignores its own
// duration and becomes main, passing, main as a triplet.
func FromNote(n *model.Note) Elem {
	if n.Ornament == nil {
		return &Note{Pitch: Pitch(n.Pitch), Duration: Duration(n.Duration)}
	}
	main := &Note{Pitch: Pitch(n.Pitch), Duration: ornamentDuration}
	passing := &Note{Pitch: Pitch(n.Ornament.Passing), Duration: ornamentDuration}
	return &Tuplet{Num: 3, Den: 2, Elems: []Elem{main, passing, main}}
}

type writer struct {
	b strings.Builder
}

func (w *writer) pf(format string, args ...any) {
	fmt.Fprintf(&w.b, format, args...)
}

func (w *writer) sequential(notes []*model.Note) {
	w.pf("\\sequential {\n")
	for _, n := range notes {
		w.pf("%s\n", FromNote(n))
	}
	w.pf("}\n")
}

// Render writes a score for display followed by the same notes again in a
// score with a midi block for playback.
func Render(out io.Writer, notes []*model.Note, tempo int) error {
	var w writer
	w.pf("\\version %q\n", constants.LilypondVersion)
	w.pf("\\language %q\n", constants.LilypondLanguage)

	w.pf("\\score {\n")
	w.sequential(notes)
	w.pf("}\n")

	w.pf("\\score {\n")
	w.sequential(notes)
	w.pf("\\midi { \\tempo 4 = %d }\n", tempo)
	w.pf("}\n")

	_, err := io.WriteString(out, w.b.String())
	return err
}
