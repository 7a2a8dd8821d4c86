package script

import (
	"context"
	"reflect"
	"testing"
)

func segment(t *testing.T, cfg SegmenterConfig, pages [][]string) *Result {
	t.Helper()
	res, err := NewSegmenter(cfg).Segment(context.Background(), pages)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	return res
}

func TestSegmentSingleBlock(t *testing.T) {
	res := segment(t, SegmenterConfig{Characters: []string{"JOHN"}}, [][]string{
		{"JOHN", "Hello there.", "How have you been?"},
	})

	want := []string{"Hello there. How have you been?"}
	if got := res.Blocks("JOHN"); !reflect.DeepEqual(got, want) {
		t.Errorf("Blocks(JOHN) = %q, want %q", got, want)
	}
}

func TestSegmentContinuationSameBlock(t *testing.T) {
	// Continuation reached on the very next line joins the two segments.
	res := segment(t, SegmenterConfig{Characters: []string{"JOHN"}}, [][]string{
		{"JOHN", "Hello there"},
		{"JOHN (CONT'D)", "how are you?"},
	})

	want := []string{"Hello there how are you?"}
	if got := res.Blocks("JOHN"); !reflect.DeepEqual(got, want) {
		t.Errorf("Blocks(JOHN) = %q, want %q", got, want)
	}
}

func TestSegmentContinuationAfterTermination(t *testing.T) {
	// A scene heading between the segments terminates the first block, so
	// the continuation cue opens a second one.
	res := segment(t, SegmenterConfig{Characters: []string{"JOHN"}}, [][]string{
		{"JOHN", "Hello there"},
		{"INT. HALLWAY - DAY", "JOHN (CONT'D)", "how are you?"},
	})

	want := []string{"Hello there", "how are you?"}
	if got := res.Blocks("JOHN"); !reflect.DeepEqual(got, want) {
		t.Errorf("Blocks(JOHN) = %q, want %q", got, want)
	}
}

func TestSegmentLowercaseContinuation(t *testing.T) {
	res := segment(t, SegmenterConfig{Characters: []string{"JOHN"}}, [][]string{
		{"JOHN", "Hello there", "John (cont'd)", "how are you?"},
	})

	want := []string{"Hello there how are you?"}
	if got := res.Blocks("JOHN"); !reflect.DeepEqual(got, want) {
		t.Errorf("Blocks(JOHN) = %q, want %q", got, want)
	}
}

func TestSegmentSceneDirectionTerminates(t *testing.T) {
	res := segment(t, SegmenterConfig{Characters: []string{"MARY"}}, [][]string{
		{
			"MARY",
			"I think we should go.",
			"INT. KITCHEN - DAY",
			"MARY",
			"Let's eat.",
		},
	})

	want := []string{"I think we should go.", "Let's eat."}
	if got := res.Blocks("MARY"); !reflect.DeepEqual(got, want) {
		t.Errorf("Blocks(MARY) = %q, want %q", got, want)
	}
	for _, b := range res.Blocks("MARY") {
		if b == "" {
			t.Error("empty block stored")
		}
	}
}

func TestSegmentUntrackedSpeakerFiltered(t *testing.T) {
	res := segment(t, SegmenterConfig{Characters: []string{"MARY"}}, [][]string{
		{"VILLAIN", "You will never stop me.", "Not ever."},
	})

	if got := res.Blocks("VILLAIN"); got != nil {
		t.Errorf("untracked speaker produced blocks: %q", got)
	}
	if got := res.Characters(); len(got) != 0 {
		t.Errorf("expected no characters, got %v", got)
	}
}

func TestSegmentEndOfInputFlush(t *testing.T) {
	res := segment(t, SegmenterConfig{Characters: []string{"JOHN"}}, [][]string{
		{"JOHN", "This block never sees a terminator"},
	})

	if got := res.Blocks("JOHN"); len(got) != 1 {
		t.Fatalf("expected trailing block to be flushed, got %q", got)
	}
}

func TestSegmentCueExclusivity(t *testing.T) {
	// A new cue flushes the previous block and never joins its text.
	res := segment(t, SegmenterConfig{Characters: []string{"JOHN", "MARY"}}, [][]string{
		{"JOHN", "See you around.", "MARY", "Goodbye, then."},
	})

	if got := res.Blocks("JOHN"); !reflect.DeepEqual(got, []string{"See you around."}) {
		t.Errorf("Blocks(JOHN) = %q", got)
	}
	if got := res.Blocks("MARY"); !reflect.DeepEqual(got, []string{"Goodbye, then."}) {
		t.Errorf("Blocks(MARY) = %q", got)
	}
}

func TestSegmentAllCapsHeuristic(t *testing.T) {
	res := segment(t, SegmenterConfig{Characters: []string{"JOHN"}}, [][]string{
		{
			"JOHN",
			"NO WAY, I won't do it!",
			"THIS IS A SECRET PLAN",
			"and this line is orphaned",
		},
	})

	// The shouty line terminates the block; the trailing line has no
	// active collection to join.
	want := []string{"NO WAY, I won't do it!"}
	if got := res.Blocks("JOHN"); !reflect.DeepEqual(got, want) {
		t.Errorf("Blocks(JOHN) = %q, want %q", got, want)
	}
}

func TestSegmentCueFollowedByCue(t *testing.T) {
	// The line after a cue is reclassified when it is not dialogue, so a
	// back-to-back cue is not swallowed.
	res := segment(t, SegmenterConfig{Characters: []string{"JOHN", "MARY"}}, [][]string{
		{"JOHN", "MARY", "Hello."},
	})

	if got := res.Blocks("JOHN"); got != nil {
		t.Errorf("Blocks(JOHN) = %q, want none", got)
	}
	if got := res.Blocks("MARY"); !reflect.DeepEqual(got, []string{"Hello."}) {
		t.Errorf("Blocks(MARY) = %q", got)
	}
}

func TestSegmentCueThenSceneHeading(t *testing.T) {
	res := segment(t, SegmenterConfig{Characters: []string{"JOHN"}}, [][]string{
		{"JOHN", "INT. LAB - NIGHT", "This is scene text now."},
	})

	if got := res.Blocks("JOHN"); got != nil {
		t.Errorf("Blocks(JOHN) = %q, want none", got)
	}
}

func TestSegmentFurnitureBetweenCueAndDialogue(t *testing.T) {
	res := segment(t, SegmenterConfig{Characters: []string{"JOHN"}}, [][]string{
		{"JOHN", "SALMON #2 XX/XX/2008 34.", "Hello there."},
	})

	want := []string{"Hello there."}
	if got := res.Blocks("JOHN"); !reflect.DeepEqual(got, want) {
		t.Errorf("Blocks(JOHN) = %q, want %q", got, want)
	}
}

func TestSegmentBlockSpansPageBoundary(t *testing.T) {
	// Accumulation continues across the page break even without a
	// continuation cue.
	res := segment(t, SegmenterConfig{Characters: []string{"JOHN"}}, [][]string{
		{"JOHN", "The first half of this thought", "(CONTINUED)"},
		{"CONTINUED:", "lands on the next page."},
	})

	want := []string{"The first half of this thought lands on the next page."}
	if got := res.Blocks("JOHN"); !reflect.DeepEqual(got, want) {
		t.Errorf("Blocks(JOHN) = %q, want %q", got, want)
	}
}

func TestSegmentEllipsisEndsBlock(t *testing.T) {
	// The trailing line must survive the validity heuristic on its own, so
	// that any difference between the two runs comes from the ellipsis
	// handling alone.
	pages := [][]string{
		{"JOHN", "Well", "I was just thinking...", "and then some"},
	}

	res := segment(t, SegmenterConfig{Characters: []string{"JOHN"}}, pages)
	want := []string{"Well I was just thinking..."}
	if got := res.Blocks("JOHN"); !reflect.DeepEqual(got, want) {
		t.Errorf("ellipsis should close the block, got %q, want %q", got, want)
	}

	res = segment(t, SegmenterConfig{
		Characters:           []string{"JOHN"},
		DisableEllipsisBreak: true,
	}, pages)
	want = []string{"Well I was just thinking... and then some"}
	if got := res.Blocks("JOHN"); !reflect.DeepEqual(got, want) {
		t.Errorf("with break disabled, got %q, want %q", got, want)
	}
}

func TestSegmentCaseInsensitiveTracking(t *testing.T) {
	res := segment(t, SegmenterConfig{Characters: []string{"tony"}}, [][]string{
		{"TONY", "I am also a genius."},
	})

	if got := res.Blocks("Tony"); !reflect.DeepEqual(got, []string{"I am also a genius."}) {
		t.Errorf("Blocks(Tony) = %q", got)
	}
}

func TestSegmentAppearanceOrder(t *testing.T) {
	res := segment(t, SegmenterConfig{Characters: []string{"MARY", "JOHN"}}, [][]string{
		{"JOHN", "First speaker.", "MARY", "Second speaker."},
	})

	want := []string{"JOHN", "MARY"}
	if got := res.Characters(); !reflect.DeepEqual(got, want) {
		t.Errorf("Characters() = %v, want %v (document order)", got, want)
	}
	if res.Total() != 2 {
		t.Errorf("Total() = %d, want 2", res.Total())
	}
}

func TestSegmentEmptyAndMalformedPages(t *testing.T) {
	res := segment(t, SegmenterConfig{Characters: []string{"JOHN"}}, [][]string{
		nil,
		{},
		{"JOHN", "Still works."},
		nil,
	})

	if got := res.Blocks("JOHN"); !reflect.DeepEqual(got, []string{"Still works."}) {
		t.Errorf("Blocks(JOHN) = %q", got)
	}
}

func TestSegmentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSegmenter(SegmenterConfig{Characters: []string{"JOHN"}}).
		Segment(ctx, [][]string{{"JOHN", "Hello."}})
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestCountCues(t *testing.T) {
	counts, err := CountCues(context.Background(), nil, [][]string{
		{"JOHN", "Hello.", "MARY", "Hi."},
		{"JOHN (CONT'D)", "Still me.", "INT. KITCHEN - DAY"},
	})
	if err != nil {
		t.Fatalf("CountCues failed: %v", err)
	}

	want := []CueCount{{Name: "JOHN", Count: 2}, {Name: "MARY", Count: 1}}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("CountCues = %v, want %v", counts, want)
	}
}

func TestCharacterSet(t *testing.T) {
	cs := NewCharacterSet("tony", "Pepper Potts", "TONY", "", "  ")

	if got := cs.Names(); !reflect.DeepEqual(got, []string{"TONY", "PEPPER POTTS"}) {
		t.Errorf("Names() = %v", got)
	}
	if cs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cs.Len())
	}
	if !cs.Contains("pepper potts") {
		t.Error("Contains should be case-insensitive")
	}
	if cs.Contains("HAPPY") {
		t.Error("Contains reported an untracked name")
	}
}
