package gabc

import "strings"

type Class int

const (
	ClassInvalid Class = iota
	ClassPitch
	ClassOrnament
	ClassIgnore
	ClassDot
	ClassHollow
	ClassBar
	ClassLiquescent
)

var classNames = map[Class]string{
	ClassInvalid:    "invalid",
	ClassPitch:      "pitch",
	ClassOrnament:   "ornament",
	ClassIgnore:     "ignore",
	ClassDot:        "dot",
	ClassHollow:     "hollow",
	ClassBar:        "bar",
	ClassLiquescent: "liquescent",
}

func (c Class) String() string {
	return classNames[c]
}

// Classify expects a lower-cased character.
func Classify(ch rune) Class {
	switch {
	case ch >= 'a' && ch <= 'm':
		return ClassPitch
	case ch == 'w': // quilisma
		return ClassOrnament
	case strings.ContainsRune("v/!z \t\r\n", ch):
		return ClassIgnore
	case ch == '.':
		return ClassDot
	case ch == 'r': // punctum cavum
		return ClassHollow
	case ch == ',' || ch == ';' || ch == ':':
		return ClassBar
	case ch == '~':
		return ClassLiquescent
	default:
		return ClassInvalid
	}
}
