// Package script classifies the linearized text of a screenplay and pulls
// out per-character dialogue blocks.
package script

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule is a single removal rule applied during line normalization.
type Rule struct {
	Pattern *regexp.Regexp
	Desc    string
}

// defaultRules returns the removal rules for page furniture and boilerplate,
// in application order. All patterns are case-insensitive.
func defaultRules() []Rule {
	return []Rule{
		rule(`[A-Z]+ #\d+\s+XX/XX/\d+\s+\d+\.?`, "draft page header stamp"),
		rule(`©\s*\d+\s+[\w .,&']+?,\s*INC\.`, "copyright notice"),
		rule(`NO DUPLICATION WITHOUT .*? WRITTEN CONSENT\.`, "copyright warning"),
		rule(`\(CONTINUED\)`, "continued marker"),
		rule(`CONTINUED:`, "continued marker at page start"),
		rule(`\(MORE\)`, "more marker"),
		rule(`^\d+\s*$`, "standalone page number"),
		rule(`\d+\s+\d+$`, "page transition numbers at line end"),
		rule(`^\s*\d+\s+\d+\s*$`, "page numbers on their own line"),
	}
}

func rule(pattern, desc string) Rule {
	return Rule{
		Pattern: regexp.MustCompile(`(?i)` + pattern),
		Desc:    desc,
	}
}

// Normalizer strips page furniture and boilerplate from raw script lines.
type Normalizer struct {
	rules []Rule
}

// NewNormalizer creates a Normalizer with the default rules plus any extra
// caller-supplied patterns (compiled case-insensitively, appended after the
// defaults).
func NewNormalizer(extra ...string) (*Normalizer, error) {
	rules := defaultRules()
	for _, p := range extra {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, fmt.Errorf("invalid furniture pattern %q: %w", p, err)
		}
		rules = append(rules, Rule{Pattern: re, Desc: "custom furniture pattern"})
	}
	return &Normalizer{rules: rules}, nil
}

// Rules returns the rule list in application order.
func (n *Normalizer) Rules() []Rule {
	out := make([]Rule, len(n.rules))
	copy(out, n.rules)
	return out
}

// Normalize applies the removal rules to a line and trims surrounding
// whitespace. The cascade runs until the line is stable, so the result is
// idempotent: Normalize(Normalize(x)) == Normalize(x). An empty result
// means the line was pure furniture.
func (n *Normalizer) Normalize(line string) string {
	s := strings.TrimSpace(line)
	for {
		prev := s
		for _, r := range n.rules {
			s = r.Pattern.ReplaceAllString(s, "")
		}
		s = strings.TrimSpace(s)
		if s == prev {
			return s
		}
	}
}
