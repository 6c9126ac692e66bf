// Package lily renders decoded notes as LilyPond source.
package lily

import (
	"fmt"
	"strings"

	"github.com/jsphweid/gabc2ly/util"
)

type Elem interface {
	String() string
}

// english note names, flat for the altered seventh
var pitchNames = []string{"c", "cs", "d", "ds", "e", "f", "fs", "g", "gs", "a", "bf", "b"}

// index is the duration level, level 0 is unused
var durations = []string{"", "8", "4", "2", "2.", "1", "1.", "\\breve"}

// the octave written without marks
const referenceOctave = 4

// Pitch is an absolute MIDI pitch; 60 renders as c'.
type Pitch int

func (p Pitch) String() string {
	octave, class := util.FloorDivMod(int(p), 12)
	n := pitchNames[class]
	if octave > referenceOctave {
		n += strings.Repeat("'", octave-referenceOctave)
	} else if octave < referenceOctave {
		n += strings.Repeat(",", referenceOctave-octave)
	}
	return n
}

// Duration is a note's duration level. Levels past the end of the table
// render as the longest entry.
type Duration int

func (d Duration) String() string {
	return durations[util.Clamp(int(d), 1, len(durations)-1)]
}

type Note struct {
	Pitch
	Duration
}

func (n *Note) String() string {
	return n.Pitch.String() + n.Duration.String()
}

type Tuplet struct {
	Num   int
	Den   int
	Elems []Elem
}

func (t *Tuplet) String() string {
	elts := []string{}
	for _, e := range t.Elems {
		elts = append(elts, e.String())
	}
	return fmt.Sprintf("\\tuplet %d/%d { %s }", t.Num, t.Den, strings.Join(elts, " "))
}
