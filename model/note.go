package model

// Duration levels. Level 1 is the shortest entry of the renderer's
// duration table, each lengthening steps one entry further.
const (
	ShortestDuration = 1
	NormalDuration   = 2
)

const Quilisma = 'w'

type Ornament struct {
	Kind rune
	// Passing is the pitch of the lower neighbour used when rendering
	// the ornament, fixed at the time the ornament was decoded.
	Passing int
}

type Note struct {
	Pitch             int
	Duration          int
	Ornament          *Ornament
	LengthenedAlready bool
}

func NewNote(pitch int) *Note {
	return &Note{Pitch: pitch, Duration: NormalDuration}
}

// Lengthen applies a dot or bar lengthening once. A note that was already
// lengthened by one of those events is left alone.
func (n *Note) Lengthen() {
	if n.LengthenedAlready {
		return
	}
	n.Duration++
	n.LengthenedAlready = true
}

// Tie always lengthens and does not touch LengthenedAlready.
func (n *Note) Tie() {
	n.Duration++
}

func (n *Note) Hollow() {
	n.Duration = ShortestDuration
}

func (n *Note) Ornamented(kind rune, passing int) {
	n.Ornament = &Ornament{Kind: kind, Passing: passing}
}
