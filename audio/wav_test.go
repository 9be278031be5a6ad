package audio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// writeWAV writes a minimal valid WAV file with an empty data chunk.
func writeWAV(t *testing.T, sampleRate, channels int) string {
	t.Helper()

	fmtBody := make([]byte, 16)
	binary.LittleEndian.PutUint16(fmtBody[0:2], 1) // PCM
	binary.LittleEndian.PutUint16(fmtBody[2:4], uint16(channels))
	binary.LittleEndian.PutUint32(fmtBody[4:8], uint32(sampleRate))
	binary.LittleEndian.PutUint32(fmtBody[8:12], uint32(sampleRate*channels*2))
	binary.LittleEndian.PutUint16(fmtBody[12:14], uint16(channels*2))
	binary.LittleEndian.PutUint16(fmtBody[14:16], 16)

	var buf []byte
	buf = append(buf, "RIFF"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(4+8+len(fmtBody)+8))
	buf = append(buf, "WAVE"...)
	buf = append(buf, "fmt "...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(fmtBody)))
	buf = append(buf, fmtBody...)
	buf = append(buf, "data"...)
	buf = binary.LittleEndian.AppendUint32(buf, 0)

	path := filepath.Join(t.TempDir(), "test.wav")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInspect(t *testing.T) {
	path := writeWAV(t, 16000, 2)
	info, err := Inspect(path)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if info.SampleRate != 16000 {
		t.Errorf("expected sample rate 16000, got %d", info.SampleRate)
	}
	if info.Channels != 2 {
		t.Errorf("expected 2 channels, got %d", info.Channels)
	}
}

func TestInspectMono(t *testing.T) {
	info, err := Inspect(writeWAV(t, 44100, 1))
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if info.SampleRate != 44100 || info.Channels != 1 {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestInspectNotWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not.wav")
	if err := os.WriteFile(path, []byte("definitely not a riff file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Inspect(path); err == nil {
		t.Fatal("expected error for non-wav input")
	}
}

func TestInspectMissingFile(t *testing.T) {
	if _, err := Inspect(filepath.Join(t.TempDir(), "gone.wav")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
