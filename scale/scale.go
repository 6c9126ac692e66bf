// Package scale maps GABC stave positions to absolute pitches for the
// current clef.
package scale

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jsphweid/gabc2ly/model"
	"github.com/jsphweid/gabc2ly/util"
	"github.com/pkg/errors"
)

var (
	ErrInvalidClef           = errors.New("invalid clef")
	ErrInternalInconsistency = errors.New("internal inconsistency")
)

// ReferencePitch is the pitch of the tonic of an unadjusted scale,
// middle C.
const ReferencePitch = 60

const (
	naturalSeventh = 11
	flatSeventh    = 10
)

var ClefPattern = regexp.MustCompile(`(?i)^([cf])([1-4])`)

// Scale is rebuilt on every clef, so an accidental never outlives one.
type Scale struct {
	tonicAdjust int
	degrees     [7]int
}

// New parses clefs such as "c4" or "f3". The tonic adjust is how many
// diatonic steps the tonic sits below the bottom line of the stave.
func New(clef string) (*Scale, error) {
	m := ClefPattern.FindStringSubmatch(clef)
	if m == nil {
		return nil, errors.Wrapf(ErrInvalidClef, "clef %q", clef)
	}
	letter := strings.ToLower(m[1])[0]
	line, _ := strconv.Atoi(m[2])

	s := &Scale{
		tonicAdjust: int(letter) - 'c' - 2*(line-1),
		degrees:     [7]int{0, 2, 4, 5, 7, 9, naturalSeventh},
	}
	return s, nil
}

func (s *Scale) TonicAdjust() int {
	return s.tonicAdjust
}

func (s *Scale) Degree(i int) int {
	return s.degrees[i]
}

// Semitones converts a diatonic position relative to the tonic into
// semitones relative to the tonic. Negative positions land in lower
// octaves.
func (s *Scale) Semitones(pos int) int {
	octave, degree := util.FloorDivMod(pos, 7)
	return octave*12 + s.degrees[degree]
}

func (s *Scale) MakeNote(stavePos int) *model.Note {
	return model.NewNote(ReferencePitch + s.Semitones(stavePos+s.tonicAdjust))
}

// LowerNote returns the note one scale step below pitch.
func (s *Scale) LowerNote(pitch int) (*model.Note, error) {
	octave, interval := util.FloorDivMod(pitch, 12)
	degree, ok := s.degreeOf(interval)
	if !ok {
		return nil, errors.Wrapf(ErrInternalInconsistency, "pitch %v is not in the scale", pitch)
	}
	if degree == 0 {
		octave--
		degree = 6
	} else {
		degree--
	}
	return model.NewNote(octave*12 + s.degrees[degree]), nil
}

func (s *Scale) degreeOf(interval int) (int, bool) {
	for degree, semitones := range s.degrees {
		if semitones == interval {
			return degree, true
		}
	}
	return 0, false
}

func (s *Scale) Flat() bool {
	return s.degrees[6] == flatSeventh
}

// SetAccidental flattens (on) or restores (off) the seventh degree. No
// other degree can be altered.
func (s *Scale) SetAccidental(on bool) {
	if on {
		s.degrees[6] = flatSeventh
	} else {
		s.degrees[6] = naturalSeventh
	}
}
