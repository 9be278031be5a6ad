package transcript

import (
	"reflect"
	"testing"
)

func utts(texts ...string) []Utterance {
	out := make([]Utterance, len(texts))
	for i, txt := range texts {
		out[i] = Utterance{Speaker: "speaker 1", Text: txt, AvgConfidence: 0.9}
	}
	return out
}

func speakers(utts []Utterance) []string {
	out := make([]string, len(utts))
	for i, u := range utts {
		out[i] = u.Speaker
	}
	return out
}

func TestRefineEmpty(t *testing.T) {
	if got := Refine(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestRefineQuestionFlips(t *testing.T) {
	got := Refine(utts("is it ready?", "and also", "yes"))
	want := []string{"speaker 1", "speaker 2", "speaker 1"}
	if !reflect.DeepEqual(speakers(got), want) {
		t.Errorf("expected %v, got %v", want, speakers(got))
	}
}

func TestRefineContinuationSuppressesFlip(t *testing.T) {
	got := Refine(utts("hello there", "and how are you", "fine thanks"))
	want := []string{"speaker 1", "speaker 1", "speaker 2"}
	if !reflect.DeepEqual(speakers(got), want) {
		t.Errorf("expected %v, got %v", want, speakers(got))
	}
}

func TestRefineAlternatesWithoutMarkers(t *testing.T) {
	got := Refine(utts("one", "two", "three", "four"))
	want := []string{"speaker 1", "speaker 2", "speaker 1", "speaker 2"}
	if !reflect.DeepEqual(speakers(got), want) {
		t.Errorf("expected %v, got %v", want, speakers(got))
	}
}

// The continuation check is a raw string prefix, so "sorry" matches the
// "so" marker. That behavior is intentional and load-bearing for
// existing outputs.
func TestRefineRawPrefixMatch(t *testing.T) {
	got := Refine(utts("first", "sorry about that"))
	want := []string{"speaker 1", "speaker 1"}
	if !reflect.DeepEqual(speakers(got), want) {
		t.Errorf("expected %v, got %v", want, speakers(got))
	}
}

func TestRefinePreservesCountAndText(t *testing.T) {
	in := utts("is it ready?", "and also", "yes")
	got := Refine(in)
	if len(got) != len(in) {
		t.Fatalf("expected %d utterances, got %d", len(in), len(got))
	}
	for i := range got {
		if got[i].Text != in[i].Text {
			t.Errorf("utterance %d: text changed from %q to %q", i, in[i].Text, got[i].Text)
		}
		if got[i].AvgConfidence != in[i].AvgConfidence {
			t.Errorf("utterance %d: confidence changed", i)
		}
	}
	// Input labels are untouched.
	if in[1].Speaker != "speaker 1" {
		t.Errorf("input mutated: %v", in)
	}
}

func TestRefineTwicePreservesStructure(t *testing.T) {
	once := Refine(utts("hello there", "and how are you", "fine thanks"))
	twice := Refine(once)
	if len(twice) != len(once) {
		t.Fatalf("second refine changed length: %d vs %d", len(twice), len(once))
	}
	for i := range twice {
		if twice[i].Text != once[i].Text {
			t.Errorf("utterance %d: second refine changed text", i)
		}
	}
}

func TestRefineSegmentLengthInvariant(t *testing.T) {
	words := []Word{
		w("is", 1, 0.9),
		w("it", 1, 0.9),
		w("ready", 1, 0.9),
		w("?", 1, 0.95),
		w("yes", 1, 0.9),
		w("and", 2, 0.9),
		w("then", 2, 0.9),
		w("mumble", 2, 0.3),
	}
	segmented := Segment(words)
	refined := Refine(segmented)
	if len(refined) != len(segmented) {
		t.Fatalf("refine changed utterance count: %d vs %d", len(refined), len(segmented))
	}
}

func TestRefineCustomStrategy(t *testing.T) {
	// A strategy that never hands the floor over.
	r := NewRefiner(WithStrategy(stickyStrategy{}))
	got := r.Refine(utts("one?", "two", "three"))
	for i, u := range got {
		if u.Speaker != "speaker 1" {
			t.Errorf("utterance %d: expected speaker 1, got %q", i, u.Speaker)
		}
	}
}

type stickyStrategy struct{}

func (stickyStrategy) Start() int { return 1 }

func (stickyStrategy) Next(current int, _ Utterance, _ *Utterance) int { return current }
