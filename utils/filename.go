package utils

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename reduces a client supplied name to something safe to use as
// a single path element. Accented letters are decomposed so "é" keeps its
// base "e", separators become underscores, anything outside [A-Za-z0-9_.-]
// is dropped and leading/trailing dots and underscores are trimmed. The
// result may be empty.
func SecureFilename(name string) string {
	name = norm.NFKD.String(name)
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}
