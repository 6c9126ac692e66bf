package util

import (
	"os"

	"golang.org/x/exp/constraints"
)

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0777)
}

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Clamp[A constraints.Integer](num A, lo A, hi A) A {
	if num < lo {
		return lo
	}
	if num > hi {
		return hi
	}
	return num
}

// FloorDivMod is divmod with the remainder always in [0, d).
func FloorDivMod[A constraints.Signed](n A, d A) (A, A) {
	q, r := n/d, n%d
	if r < 0 {
		q--
		r += d
	}
	return q, r
}
