// Package audio inspects WAV recordings and downmixes them to mono for
// the recognition service, which only accepts single-channel input.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Info holds the properties of a WAV file the pipeline cares about.
type Info struct {
	SampleRate int
	Channels   int
}

// Inspect reads the RIFF fmt chunk of a WAV file.
func Inspect(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()
	return readInfo(f)
}

func readInfo(r io.Reader) (Info, error) {
	var header [12]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Info{}, fmt.Errorf("read riff header: %w", err)
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return Info{}, fmt.Errorf("not a wav file")
	}

	// Walk chunks until fmt shows up.
	for {
		var chunk [8]byte
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			return Info{}, fmt.Errorf("missing fmt chunk: %w", err)
		}
		size := binary.LittleEndian.Uint32(chunk[4:8])
		if string(chunk[0:4]) != "fmt " {
			if _, err := io.CopyN(io.Discard, r, int64(size)); err != nil {
				return Info{}, fmt.Errorf("skip chunk: %w", err)
			}
			continue
		}
		if size < 16 {
			return Info{}, fmt.Errorf("fmt chunk too short: %d bytes", size)
		}
		body := make([]byte, size)
		if _, err := io.ReadFull(r, body); err != nil {
			return Info{}, fmt.Errorf("read fmt chunk: %w", err)
		}
		return Info{
			Channels:   int(binary.LittleEndian.Uint16(body[2:4])),
			SampleRate: int(binary.LittleEndian.Uint32(body[4:8])),
		}, nil
	}
}
