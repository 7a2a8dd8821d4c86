package script

import (
	"context"
	"strings"
)

// state tracks where the segmenter is in the cue/dialogue cycle.
type state int

const (
	// stateIdle: no active speaker; lines are scene text and ignored.
	stateIdle state = iota
	// stateAwaitCue: a cue was just seen; the next line is the candidate
	// first dialogue line.
	stateAwaitCue
	// stateAwaitCont: a continuation cue was just seen; the next line may
	// extend the active block.
	stateAwaitCont
	// stateAccumulating: a speaker is active with at least one pending line.
	stateAccumulating
)

// SegmenterConfig configures a Segmenter. Zero values select defaults.
type SegmenterConfig struct {
	// Characters are the speakers whose dialogue is retained.
	Characters []string

	// Normalizer strips page furniture before classification.
	// Nil selects the default rules.
	Normalizer *Normalizer

	// Exclamations and Markers replace the classifier's heuristic lists
	// when non-nil.
	Exclamations []string
	Markers      []string

	// DisableEllipsisBreak keeps a block open when a dialogue line trails
	// off with "...". By default such a line closes the block.
	DisableEllipsisBreak bool
}

// Segmenter runs the line-classification state machine over the pages of a
// screenplay. One Segmenter serves one extraction run; independent runs
// share nothing.
type Segmenter struct {
	chars         *CharacterSet
	norm          *Normalizer
	class         *Classifier
	ellipsisBreak bool

	state   state
	speaker string
	pending []string
	res     *Result
}

// NewSegmenter creates a Segmenter for one extraction run.
func NewSegmenter(cfg SegmenterConfig) *Segmenter {
	norm := cfg.Normalizer
	if norm == nil {
		norm, _ = NewNormalizer()
	}
	return &Segmenter{
		chars:         NewCharacterSet(cfg.Characters...),
		norm:          norm,
		class:         NewClassifier(cfg.Exclamations, cfg.Markers),
		ellipsisBreak: !cfg.DisableEllipsisBreak,
		state:         stateIdle,
		res:           newResult(),
	}
}

// Segment consumes every line of every page in order and returns the
// dialogue blocks per tracked character. Pages with no text count as empty.
// The context is checked at page granularity; classification itself never
// fails.
func (s *Segmenter) Segment(ctx context.Context, pages [][]string) (*Result, error) {
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, line := range page {
			s.feed(line)
		}
	}
	s.flush()
	s.speaker = ""
	s.state = stateIdle
	return s.res, nil
}

// feed advances the state machine by one raw line.
func (s *Segmenter) feed(line string) {
	norm := s.norm.Normalize(line)

	switch s.state {
	case stateAwaitCue:
		if norm == "" {
			// Furniture between cue and speech does not consume the slot.
			return
		}
		if s.class.IsDialogue(norm, s.speaker) {
			s.pending = append(s.pending, norm)
			s.state = stateAccumulating
			return
		}
		// The candidate first line is not speech. Drop the cue and send
		// the line back through full classification: it may itself be a
		// new cue or a scene boundary.
		s.speaker = ""
		s.state = stateIdle
		s.classify(norm)

	case stateAwaitCont:
		if norm == "" {
			return
		}
		if s.class.IsDialogue(norm, s.speaker) {
			s.pending = append(s.pending, norm)
		}
		if len(s.pending) > 0 {
			s.state = stateAccumulating
		} else {
			s.state = stateAwaitCue
		}

	default:
		if norm == "" {
			return
		}
		s.classify(norm)
	}
}

// classify handles a non-empty normalized line in the Idle or Accumulating
// states.
func (s *Segmenter) classify(line string) {
	// Continuation cues are checked before plain cues so that an
	// upper-case "NAME (CONT'D)" extends the active block instead of
	// opening a new one.
	if s.speaker != "" {
		if name, ok := continuationName(line); ok && name == s.speaker {
			s.state = stateAwaitCont
			return
		}
	}

	if name, ok := CueName(line); ok {
		s.flush()
		s.speaker = name
		s.state = stateAwaitCue
		return
	}

	if s.state == stateAccumulating {
		if s.class.IsDialogue(line, s.speaker) {
			s.pending = append(s.pending, line)
			if s.ellipsisBreak && strings.HasSuffix(line, "...") {
				s.flush()
				s.speaker = ""
				s.state = stateIdle
			}
			return
		}
		// Scene direction or a transition: the block ends here.
		s.flush()
		s.speaker = ""
		s.state = stateIdle
		return
	}

	// No active collection: scene text, ignored.
}

// flush closes the pending block. Empty blocks and untracked speakers are
// discarded.
func (s *Segmenter) flush() {
	text := strings.TrimSpace(strings.Join(s.pending, " "))
	s.pending = nil
	if text == "" || s.speaker == "" {
		return
	}
	if s.chars.Contains(s.speaker) {
		s.res.add(s.speaker, text)
	}
}

// CueCount tallies how often one speaker cue appears.
type CueCount struct {
	Name  string
	Count int
}

// CountCues scans the pages and tallies every distinct speaker cue, in
// order of first appearance. Continuation cues count toward their base
// name. Useful for discovering which characters a script contains.
func CountCues(ctx context.Context, norm *Normalizer, pages [][]string) ([]CueCount, error) {
	if norm == nil {
		norm, _ = NewNormalizer()
	}
	var order []string
	counts := make(map[string]int)
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, line := range page {
			n := norm.Normalize(line)
			if n == "" {
				continue
			}
			name, ok := CueName(n)
			if !ok {
				continue
			}
			if counts[name] == 0 {
				order = append(order, name)
			}
			counts[name]++
		}
	}
	out := make([]CueCount, len(order))
	for i, name := range order {
		out[i] = CueCount{Name: name, Count: counts[name]}
	}
	return out, nil
}
