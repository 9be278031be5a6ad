package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// ConvertToMono downmixes a WAV file to a single channel via ffmpeg,
// writing the result to outPath.
//
// ffmpeg -y -i input -ac 1 -f wav output
func ConvertToMono(ctx context.Context, inPath, outPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-i", inPath,
		"-ac", "1",
		"-f", "wav",
		outPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, stderr.String())
	}
	return nil
}
