package transcript

import (
	"fmt"
	"strings"
)

// Segmenter groups a chronological word stream into utterances. Words
// below the confidence threshold are dropped before grouping, and a run
// whose text contains a question mark is split into a question and an
// answer attributed to the other speaker.
type Segmenter struct {
	threshold float64
}

// SegmenterOption configures a Segmenter.
type SegmenterOption func(*Segmenter)

// WithConfidenceThreshold overrides the word retention cutoff. Words
// with confidence >= threshold are kept.
func WithConfidenceThreshold(t float64) SegmenterOption {
	return func(s *Segmenter) { s.threshold = t }
}

// NewSegmenter builds a Segmenter with the default 0.8 cutoff.
func NewSegmenter(opts ...SegmenterOption) *Segmenter {
	s := &Segmenter{threshold: DefaultConfidenceThreshold}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Segment converts the ordered word stream into utterances. It is a
// pure function: an empty input yields an empty output and the input
// slice is never modified.
func (s *Segmenter) Segment(words []Word) []Utterance {
	var (
		out        []Utterance
		run        []Word
		currentTag int
		started    bool
	)

	flush := func() {
		out = append(out, closeRun(run, currentTag)...)
		run = run[:0]
	}

	for _, w := range words {
		if !started || w.SpeakerTag != currentTag {
			flush()
			currentTag = w.SpeakerTag
			started = true
		}
		if w.Confidence >= s.threshold {
			run = append(run, w)
		}
	}
	flush()

	return out
}

// Segment runs a default Segmenter over the word stream.
func Segment(words []Word) []Utterance {
	return NewSegmenter().Segment(words)
}

// closeRun emits zero, one, or two utterances for one speaker run. A
// question mark splits the run at its first occurrence; the remainder,
// if any, becomes an answer attributed to the other canonical speaker
// (binary 3-tag flip, two meaningfully distinguished speakers at this
// stage).
func closeRun(run []Word, tag int) []Utterance {
	if len(run) == 0 {
		return nil
	}

	text := joinWords(run)
	avg := meanConfidence(run)

	i := strings.Index(text, "?")
	if i < 0 {
		return []Utterance{{Speaker: speakerLabel(tag), Text: text, AvgConfidence: avg}}
	}

	question := strings.TrimSpace(text[:i+1])
	answer := strings.TrimSpace(text[i+1:])

	utts := []Utterance{{Speaker: speakerLabel(tag), Text: question, AvgConfidence: avg}}
	if answer != "" {
		// The run's mean covers both halves of the split.
		utts = append(utts, Utterance{Speaker: speakerLabel(3 - tag), Text: answer, AvgConfidence: avg})
	}
	return utts
}

// joinWords joins retained words with single spaces. Standalone
// punctuation tokens attach directly to the previous word.
func joinWords(run []Word) string {
	var b strings.Builder
	for i, w := range run {
		if i > 0 && !isPunctToken(w.Text) {
			b.WriteByte(' ')
		}
		b.WriteString(w.Text)
	}
	return strings.TrimSpace(b.String())
}

// isPunctToken reports whether the token consists solely of the
// sentence punctuation characters . , ! ?
func isPunctToken(t string) bool {
	if t == "" {
		return false
	}
	for _, r := range t {
		switch r {
		case '.', ',', '!', '?':
		default:
			return false
		}
	}
	return true
}

func meanConfidence(run []Word) float64 {
	if len(run) == 0 {
		return 0
	}
	sum := 0.0
	for _, w := range run {
		sum += w.Confidence
	}
	return sum / float64(len(run))
}

func speakerLabel(n int) string {
	return fmt.Sprintf("speaker %d", n)
}
