package script

import "strings"

// CharacterSet is the set of speakers whose dialogue is retained.
// Names are canonicalized to upper case and matched case-insensitively.
// Immutable once built.
type CharacterSet struct {
	order   []string
	members map[string]struct{}
}

// NewCharacterSet builds a CharacterSet from the given names, preserving
// first-seen order and dropping duplicates and blanks.
func NewCharacterSet(names ...string) *CharacterSet {
	cs := &CharacterSet{members: make(map[string]struct{}, len(names))}
	for _, n := range names {
		c := strings.ToUpper(strings.TrimSpace(n))
		if c == "" {
			continue
		}
		if _, ok := cs.members[c]; ok {
			continue
		}
		cs.members[c] = struct{}{}
		cs.order = append(cs.order, c)
	}
	return cs
}

// Contains reports whether name is tracked (case-insensitive).
func (cs *CharacterSet) Contains(name string) bool {
	_, ok := cs.members[strings.ToUpper(strings.TrimSpace(name))]
	return ok
}

// Names returns the canonical names in first-seen order.
func (cs *CharacterSet) Names() []string {
	out := make([]string, len(cs.order))
	copy(out, cs.order)
	return out
}

// Len returns the number of tracked characters.
func (cs *CharacterSet) Len() int {
	return len(cs.order)
}

// Result maps canonical character names to their dialogue blocks, in order
// of appearance in the document.
type Result struct {
	order  []string
	blocks map[string][]string
}

func newResult() *Result {
	return &Result{blocks: make(map[string][]string)}
}

func (r *Result) add(name, block string) {
	if _, ok := r.blocks[name]; !ok {
		r.order = append(r.order, name)
	}
	r.blocks[name] = append(r.blocks[name], block)
}

// Blocks returns the dialogue blocks for a character, in document order.
// The name is matched case-insensitively.
func (r *Result) Blocks(name string) []string {
	return r.blocks[strings.ToUpper(strings.TrimSpace(name))]
}

// Characters returns the names that have at least one block, in order of
// first appearance in the document.
func (r *Result) Characters() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Total returns the number of dialogue blocks across all characters.
func (r *Result) Total() int {
	n := 0
	for _, b := range r.blocks {
		n += len(b)
	}
	return n
}
