package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
)

func trimAndLower(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return s
}

func hyphenateNonAlnum(s string) string {
	return reNonAlnum.ReplaceAllString(s, "-")
}

func trimHyphens(s string) string {
	return strings.Trim(s, "-")
}

// Slugify derives a URL-safe identifier from a title: lowercase, every run of
// non-alphanumeric characters collapsed into one hyphen, no hyphen at either end.
func Slugify(title string) string {
	p := Pipeline{
		trimAndLower,
		hyphenateNonAlnum,
		trimHyphens,
	}
	return p.Apply(title)
}

// SanitizeSlice applies the strategy to every element in place of the
// original. Length and order are preserved: an element that comes out empty
// stays in the slice, so list validation still sees it and can reject it.
func SanitizeSlice(values []string, strategy Strategy) []string {
	if values == nil {
		return nil
	}

	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strategy(v)
	}

	return out
}
