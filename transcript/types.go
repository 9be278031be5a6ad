// Package transcript turns word-level diarized recognizer output into a
// cleaned, speaker-attributed transcript. It has two stages: a Segmenter
// that groups words into utterances, and a Refiner that normalizes the
// noisy diarization labels with a turn-taking heuristic.
package transcript

// Word is a single recognized word as emitted by the diarizing
// recognizer. A []Word is ordered chronologically.
type Word struct {
	// Text is the recognized word.
	Text string `json:"word"`
	// SpeakerTag is the raw diarization tag from the recognizer.
	SpeakerTag int `json:"speaker_tag"`
	// Confidence is the recognizer's confidence in [0,1].
	Confidence float64 `json:"confidence"`
}

// Utterance is one contiguous speaker turn.
type Utterance struct {
	// Speaker is the speaker label, e.g. "speaker 1".
	Speaker string `json:"speaker"`
	// Text is the space-joined retained words of the turn.
	Text string `json:"text"`
	// AvgConfidence is the mean confidence of the words that formed
	// the turn's run.
	AvgConfidence float64 `json:"avg_confidence"`
}
