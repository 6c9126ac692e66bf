// Package gabc decodes GABC neume notation into a stream of notes.
//
// The first token is the clef, every following token is the notation of
// one syllable. Tokens are decoded strictly in order and the decoder
// state (scale, notes, length of the trailing neume) carries across them.
package gabc

import (
	"io"
	"log"
	"regexp"
	"strings"

	"github.com/jsphweid/gabc2ly/model"
	"github.com/jsphweid/gabc2ly/scale"
	"github.com/jsphweid/gabc2ly/util"
	"github.com/pkg/errors"
)

// the bottom line of the stave
const baseline = 'd'

var (
	doubleBarPattern     = regexp.MustCompile(`::`)
	clefPattern          = regexp.MustCompile(`(?i)[cf][1-4]`)
	accidentalPattern    = regexp.MustCompile(`(?i)[a-m]([xy])`)
	trailingNeumePattern = regexp.MustCompile(`(?i)[a-m]+$`)
	spacingPattern       = regexp.MustCompile(`\[\d+\]`)
	bracketedPattern     = regexp.MustCompile(`\[.*?\]`)
	removalPatterns      = []*regexp.Regexp{doubleBarPattern, clefPattern, spacingPattern, bracketedPattern}
)

type Option func(*Decoder)

func WithLogger(l *log.Logger) Option {
	return func(d *Decoder) {
		d.logger = l
	}
}

// KeepAccidentalAcrossClef carries a flattened seventh over a clef change.
// By default a clef change drops it.
func KeepAccidentalAcrossClef() Option {
	return func(d *Decoder) {
		d.keepAccidental = true
	}
}

type Decoder struct {
	scale           *scale.Scale
	notes           []*model.Note
	lastNeumeLength int

	logger         *log.Logger
	keepAccidental bool
}

// per-token state, reset for every syllable
type scanState struct {
	prev    rune
	dotSeen bool
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{logger: log.New(io.Discard, "", 0)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode runs the whole token list. On error the returned notes are nil;
// nothing decoded before the failure is usable.
func (d *Decoder) Decode(tokens []string) ([]*model.Note, error) {
	d.scale = nil
	d.notes = nil
	d.lastNeumeLength = 0

	if len(tokens) == 0 {
		return nil, errors.Wrap(ErrInvalidClef, "missing clef")
	}
	d.logger.Printf("tokens: %q", tokens)

	if err := d.setClef(tokens[0]); err != nil {
		return nil, err
	}
	for _, token := range tokens[1:] {
		if err := d.decodeSyllable(token); err != nil {
			d.notes = nil
			return nil, err
		}
	}
	return d.notes, nil
}

// Scale is the scale in effect after the last decoded token.
func (d *Decoder) Scale() *scale.Scale {
	return d.scale
}

func (d *Decoder) setClef(clef string) error {
	s, err := scale.New(clef)
	if err != nil {
		return err
	}
	if d.keepAccidental && d.scale != nil && d.scale.Flat() {
		s.SetAccidental(true)
	}
	d.logger.Printf("clef %v, tonic adjust %v", clef, s.TonicAdjust())
	d.scale = s
	return nil
}

func (d *Decoder) decodeSyllable(token string) error {
	d.logger.Printf("decoding %q", token)

	cleaned, err := d.preprocess(token)
	if err != nil {
		return err
	}
	if err := d.scan(cleaned); err != nil {
		return errors.Wrapf(err, "syllable %q", token)
	}
	return nil
}

// preprocess handles the things that apply to a whole syllable (double
// bar, clef change, accidental) and strips them along with bracketed
// annotations, leaving only characters for scan.
func (d *Decoder) preprocess(token string) (string, error) {
	if strings.HasPrefix(token, "::") {
		d.bar()
	}

	if scale.ClefPattern.MatchString(token) {
		if err := d.setClef(token); err != nil {
			return "", err
		}
	}

	// only the first marker counts, the rest are dropped
	if m := accidentalPattern.FindStringSubmatch(token); m != nil {
		d.logger.Printf("found accidental %v", m[0])
		d.scale.SetAccidental(strings.ToLower(m[1]) == "x")
	}
	token = accidentalPattern.ReplaceAllString(token, "")

	for _, pattern := range removalPatterns {
		token = pattern.ReplaceAllString(token, "")
	}

	neume := strings.TrimRight(token, ",;: \t\r\n")
	if loc := trailingNeumePattern.FindStringIndex(neume); loc != nil {
		d.lastNeumeLength = loc[1] - loc[0]
	} else if strings.HasSuffix(neume, ".") && !strings.HasSuffix(neume, "..") {
		d.lastNeumeLength = 1
	}

	return token, nil
}

func (d *Decoder) scan(token string) error {
	var st scanState
	for _, ch := range strings.ToLower(token) {
		if err := d.step(&st, ch); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) step(st *scanState, ch rune) error {
	switch Classify(ch) {
	case ClassPitch:
		if ch == st.prev {
			d.lengthen(1, true)
			return nil
		}
		d.notes = append(d.notes, d.scale.MakeNote(int(ch-baseline)))
		st.prev = ch
	case ClassOrnament:
		return d.ornament(ch)
	case ClassIgnore, ClassLiquescent:
	case ClassDot:
		if st.dotSeen {
			// double dot: the previous two notes
			d.lengthen(2, false)
			st.dotSeen = false
		} else {
			d.lengthen(1, false)
			st.dotSeen = true
		}
	case ClassHollow:
		if n := d.last(); n != nil {
			n.Hollow()
		}
	case ClassBar:
		d.bar()
	default:
		return errors.Wrapf(ErrUnsupportedToken, "character %q", ch)
	}
	return nil
}

func (d *Decoder) last() *model.Note {
	if len(d.notes) == 0 {
		return nil
	}
	return d.notes[len(d.notes)-1]
}

func (d *Decoder) ornament(kind rune) error {
	n := d.last()
	if n == nil {
		return nil
	}
	passing, err := d.scale.LowerNote(n.Pitch)
	if err != nil {
		return err
	}
	n.Ornamented(kind, passing.Pitch)
	return nil
}

// bar closes the accidental scope and lengthens the trailing neume.
func (d *Decoder) bar() {
	d.scale.SetAccidental(false)
	d.lengthen(d.lastNeumeLength, false)
	d.lastNeumeLength = 0
}

// lengthen is shared by ties, dots and bars. A tie always lengthens the
// last note. Otherwise each of the last count notes is lengthened unless
// a dot or bar already did so.
func (d *Decoder) lengthen(count int, tie bool) {
	d.logger.Printf("lengthen count=%v tie=%v lastNeumeLength=%v", count, tie, d.lastNeumeLength)
	if len(d.notes) == 0 {
		return
	}
	if tie {
		d.last().Tie()
		return
	}
	count = util.Min(count, len(d.notes))
	for i := 0; i < count; i++ {
		d.notes[len(d.notes)-1-i].Lengthen()
	}
}
