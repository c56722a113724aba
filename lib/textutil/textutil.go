package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// StripWhitespace removes every whitespace run from s.
// Scraped text fields carry layout whitespace that is never
// part of the value.
func StripWhitespace(s string) string {
	return whitespaceRegex.ReplaceAllString(s, "")
}

// CollapseWhitespace trims s and squashes inner whitespace
// runs into single spaces.
func CollapseWhitespace(s string) string {
	s = strings.Trim(s, " \n\t")
	return whitespaceRegex.ReplaceAllString(s, " ")
}

var labelCountRegex = regexp.MustCompile(`^(\D+)(\d+)$`)

// SplitLabelCount splits strings shaped like "attractions128"
// into the label and the trailing digit run. ok is false when
// the text does not end with digits.
func SplitLabelCount(s string) (label string, digits string, ok bool) {
	groups := labelCountRegex.FindStringSubmatch(s)
	if len(groups) < 3 {
		return "", "", false
	}
	return groups[1], groups[2], true
}
