package orchestrator

import "github.com/voicemetrics/diarize-pipeline/transcript"

// Result is the outcome of one pipeline run.
type Result struct {
	// Words is the raw word-level stream from the recognizer.
	Words []transcript.Word
	// Utterances is the refined speaker-level transcript.
	Utterances []transcript.Utterance
	// WordPath and UtterancePath are the persisted JSON artifacts.
	WordPath      string
	UtterancePath string
	// FromCache reports whether the recognition was served from cache.
	FromCache bool
}
