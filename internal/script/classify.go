package script

import (
	"regexp"
	"strings"
	"unicode"
)

// cueRE matches a speaker cue: a line that is nothing but an upper-case name
// (letters, spaces, apostrophes), optionally followed by a parenthetical
// tone direction.
var cueRE = regexp.MustCompile(`^([A-Z][A-Z' ]+)(?:\s*\([^)]+\))?\s*$`)

// contRE matches a continuation cue: a name followed by "(cont'd)" in any
// case, as printed after a page break.
var contRE = regexp.MustCompile(`(?i)^(.*?)\s*\(cont['’]d\)\s*$`)

// CueName reports whether the line is a speaker cue and returns the
// canonical (upper-case, trimmed) name.
func CueName(line string) (string, bool) {
	m := cueRE.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return "", false
	}
	return strings.ToUpper(name), true
}

// continuationName returns the canonical name prefix of a continuation cue.
func continuationName(line string) (string, bool) {
	m := contRE.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return "", false
	}
	return strings.ToUpper(name), true
}

// enumRE matches a leading enumerated-list item like "3." which never opens
// spoken dialogue.
var enumRE = regexp.MustCompile(`^\d+\.`)

// DefaultExclamations returns short all-caps words tolerated inside dialogue.
// Anything longer than two characters that is fully upper-case and not in
// this list marks the line as a cue or scene marker rather than speech.
func DefaultExclamations() []string {
	return []string{
		"NO", "OK", "YES", "OKAY", "WAIT", "WOW", "WAY", "HEY",
		"WHAT", "WHO", "WHY", "HOW", "GOD", "HMM", "HUH",
		"WHOA", "NOW", "STOP", "RUN", "HELP",
	}
}

// DefaultMarkers returns scene and transition indicator substrings. A dialogue
// candidate containing any of them (case-insensitively) is script direction,
// not speech.
func DefaultMarkers() []string {
	return []string{
		"INT.", "EXT.", "ANGLE ON", "CLOSE ON",
		"CUT TO:", "FLASH TO:", "FADE IN:", "FADE OUT",
		"DISSOLVE TO:", "SMASH CUT", "SCENE ", "ACT ",
	}
}

// Classifier decides whether a normalized line reads as spoken dialogue.
// The word allow-list and marker list are heuristics and can be replaced
// wholesale; substring matching means embedded hits (a name inside a common
// word) are possible and accepted as a known limitation.
type Classifier struct {
	exclaim map[string]struct{}
	markers []string
}

// NewClassifier creates a Classifier. Nil slices select the defaults.
func NewClassifier(exclamations, markers []string) *Classifier {
	if exclamations == nil {
		exclamations = DefaultExclamations()
	}
	if markers == nil {
		markers = DefaultMarkers()
	}
	allow := make(map[string]struct{}, len(exclamations))
	for _, w := range exclamations {
		allow[strings.ToUpper(w)] = struct{}{}
	}
	up := make([]string, len(markers))
	for i, m := range markers {
		up[i] = strings.ToUpper(m)
	}
	return &Classifier{exclaim: allow, markers: up}
}

// IsDialogue reports whether the line is valid spoken dialogue for the
// given canonical speaker name. speaker may be empty.
func (c *Classifier) IsDialogue(line, speaker string) bool {
	if enumRE.MatchString(line) {
		return false
	}

	upper := strings.ToUpper(line)
	if speaker != "" && strings.Contains(upper, speaker) {
		// A line carrying the speaker's own name is almost always a
		// mis-split cue.
		return false
	}
	for _, m := range c.markers {
		if strings.Contains(upper, m) {
			return false
		}
	}

	for _, field := range strings.Fields(line) {
		w := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		if len(w) <= 2 || !isAllUpper(w) {
			continue
		}
		if _, ok := c.exclaim[w]; !ok {
			return false
		}
	}
	return true
}

// isAllUpper reports whether s contains letters and no lower-case ones.
func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
