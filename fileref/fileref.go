// Recognizes tokens that refer to SVG files, for the hover path that
// previews a file rather than an inline fragment. This is a pure
// syntactic guard with no state; it exists to avoid false positives on
// tokens that merely end in the suffix.
package fileref

import (
	"regexp"
	"strings"
)

const suffix = ".svg"

// filenamePattern is the strict single-segment shape accepted without a
// path separator: a plain filename, no spaces, no quotes.
var filenamePattern = regexp.MustCompile(`^[A-Za-z0-9_@.-]+\.[sS][vV][gG]$`)

// IsFileReference reports whether token is a reference to an SVG file:
// it must end with the recognized suffix and either contain a path
// separator or be a strict single-segment filename.
func IsFileReference(token string) bool {
	if len(token) <= len(suffix) {
		return false
	}
	if !strings.EqualFold(token[len(token)-len(suffix):], suffix) {
		return false
	}
	if strings.ContainsAny(token, `/\`) {
		return true
	}
	return filenamePattern.MatchString(token)
}
