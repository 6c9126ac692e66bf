package gabc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := map[Class]string{
		ClassPitch:      "abcdefghijklm",
		ClassOrnament:   "w",
		ClassIgnore:     "v/!z \n",
		ClassDot:        ".",
		ClassHollow:     "r",
		ClassBar:        ",;:",
		ClassLiquescent: "~",
		ClassInvalid:    "nqsx#'0[",
	}

	for class, chars := range cases {
		for _, ch := range chars {
			t.Run(fmt.Sprintf("%q is %v", ch, class), func(t *testing.T) {
				assert.Equal(t, class, Classify(ch))
			})
		}
	}
}
