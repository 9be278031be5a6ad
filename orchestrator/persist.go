package orchestrator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/voicemetrics/diarize-pipeline/transcript"
)

// Manifest records what one run produced.
type Manifest struct {
	RunID            string    `json:"run_id"`
	Recording        string    `json:"recording"`
	GeneratedAt      time.Time `json:"generated_at"`
	WordLevelPath    string    `json:"word_level_path"`
	SpeakerLevelPath string    `json:"speaker_level_path"`
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// persist writes the word-level and speaker-level transcripts plus a
// run manifest into the output directory.
func (p *Pipeline) persist(name string, words []transcript.Word, utts []transcript.Utterance) (wordPath, uttPath string, err error) {
	outDir := p.cfg.OutputDir
	if err = os.MkdirAll(outDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	wordPath = filepath.Join(outDir, stem+"_word_level_transcription.json")
	uttPath = filepath.Join(outDir, stem+"_speaker_level_transcription.json")

	if err = writeJSON(wordPath, words); err != nil {
		return "", "", fmt.Errorf("write word-level transcript: %w", err)
	}
	if err = writeJSON(uttPath, utts); err != nil {
		return "", "", fmt.Errorf("write speaker-level transcript: %w", err)
	}

	manifest := Manifest{
		RunID:            uuid.NewString(),
		Recording:        name,
		GeneratedAt:      time.Now(),
		WordLevelPath:    wordPath,
		SpeakerLevelPath: uttPath,
	}
	if err = writeJSON(filepath.Join(outDir, stem+"_manifest.json"), manifest); err != nil {
		return "", "", fmt.Errorf("write manifest: %w", err)
	}

	p.log.WithFields(logrus.Fields{
		"word_level":    wordPath,
		"speaker_level": uttPath,
	}).Info("transcripts saved")
	return wordPath, uttPath, nil
}
