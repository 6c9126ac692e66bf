// Package file finds GABC notation in .gabc and .tex sources.
package file

import (
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("not found")

var (
	// matches either a body without braces or one with a single braced
	// group inside it, eg \gabcsnippet{(c4) A(f)ve {\ae}(g)}
	snippetPattern     = regexp.MustCompile(`(?s)\\gabcsnippet\{([^{}]+|[^{}]+\{.*?\}[^{}]+)\}`)
	parenPattern       = regexp.MustCompile(`\(([^)]+)\)`)
	altPattern         = regexp.MustCompile(`(?s)<alt>.*?</alt>`)
	tagPattern         = regexp.MustCompile(`</?\w+>`)
	headerBreakPattern = regexp.MustCompile(`(?m)^%%\s*$`)
)

// FindGabc returns the notation text of a .gabc file, or of the snippet-th
// (1 based) \gabcsnippet of a .tex file.
func FindGabc(path string, snippet int) (string, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %v", path)
	}
	text := string(dat)

	if strings.HasSuffix(path, ".tex") {
		return Snippet(text, snippet)
	}
	return Body(text), nil
}

// Body drops the header of a .gabc file, everything up to the %% line.
func Body(text string) string {
	loc := headerBreakPattern.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[loc[1]:]
}

func Snippet(text string, n int) (string, error) {
	matches := snippetPattern.FindAllStringSubmatch(text, -1)
	if n < 1 || n > len(matches) {
		return "", errors.Wrapf(ErrNotFound, "snippet %v of %v", n, len(matches))
	}
	return matches[n-1][1], nil
}

// ParseParentheses returns the contents of each parenthesised group in
// order, the first of which is normally the clef.
func ParseParentheses(text string) ([]string, error) {
	var res []string
	for _, m := range parenPattern.FindAllStringSubmatch(text, -1) {
		res = append(res, m[1])
	}
	if len(res) == 0 {
		return nil, errors.Wrap(ErrNotFound, "no parenthesized groups found")
	}
	return res, nil
}

// RemoveParens keeps only the lyrics: notation groups, <alt> text and
// markup tags are removed.
func RemoveParens(text string) string {
	rest := parenPattern.ReplaceAllString(text, "")
	rest = altPattern.ReplaceAllString(rest, "")
	return tagPattern.ReplaceAllString(rest, "")
}
