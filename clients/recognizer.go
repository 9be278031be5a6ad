package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/voicemetrics/diarize-pipeline/transcript"
)

// DiarizationConfig asks the recognizer to attribute words to speakers.
type DiarizationConfig struct {
	MinSpeakerCount int `json:"min_speaker_count"`
	MaxSpeakerCount int `json:"max_speaker_count"`
}

// RecognizeRequest starts a long-running recognition over an uploaded
// recording.
type RecognizeRequest struct {
	URI             string            `json:"uri"`
	SampleRateHertz int               `json:"sample_rate_hertz"`
	LanguageCode    string            `json:"language_code"`
	Diarization     DiarizationConfig `json:"diarization"`
}

// RecognizeResponse is the completed recognition result.
type RecognizeResponse struct {
	Results []RecognitionResult `json:"results"`
}

type RecognitionResult struct {
	Alternatives []RecognitionAlternative `json:"alternatives"`
}

type RecognitionAlternative struct {
	Transcript string            `json:"transcript,omitempty"`
	Words      []transcript.Word `json:"words"`
}

// Words returns the word stream of the response: the first alternative
// of the last result, which on diarization-enabled recognitions carries
// the speaker tags for the whole recording.
func (r *RecognizeResponse) Words() []transcript.Word {
	if r == nil || len(r.Results) == 0 {
		return nil
	}
	last := r.Results[len(r.Results)-1]
	if len(last.Alternatives) == 0 {
		return nil
	}
	return last.Alternatives[0].Words
}

// operation mirrors the service's long-running operation resource.
type operation struct {
	Name     string             `json:"name"`
	Done     bool               `json:"done"`
	Error    string             `json:"error,omitempty"`
	Response *RecognizeResponse `json:"response,omitempty"`
}

// StartRecognize submits a recognition job and returns the operation
// name to poll.
func (h *HTTP) StartRecognize(ctx context.Context, url string, req RecognizeRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/v1/speech:longrunningrecognize", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := h.c.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("recognize %s: %s", resp.Status, string(body))
	}

	var op operation
	if err := json.NewDecoder(resp.Body).Decode(&op); err != nil {
		return "", fmt.Errorf("recognize decode: %w", err)
	}
	if op.Name == "" {
		return "", fmt.Errorf("recognize: empty operation name")
	}
	return op.Name, nil
}

// PollOperation fetches the current state of a recognition operation.
func (h *HTTP) PollOperation(ctx context.Context, url, name string) (done bool, result *RecognizeResponse, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+"/v1/operations/"+name, nil)
	if err != nil {
		return false, nil, err
	}
	resp, err := h.c.Do(req)
	if err != nil {
		return false, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return false, nil, fmt.Errorf("operation %s: %s", resp.Status, string(body))
	}

	var op operation
	if err := json.NewDecoder(resp.Body).Decode(&op); err != nil {
		return false, nil, fmt.Errorf("operation decode: %w", err)
	}
	if !op.Done {
		return false, nil, nil
	}
	if op.Error != "" {
		return true, nil, fmt.Errorf("recognition failed: %s", op.Error)
	}
	if op.Response == nil {
		return true, nil, fmt.Errorf("recognition done without response")
	}
	return true, op.Response, nil
}

// Recognize submits a recognition job and polls until it completes or
// the context is cancelled.
func (h *HTTP) Recognize(ctx context.Context, url string, req RecognizeRequest, pollInterval time.Duration) (*RecognizeResponse, error) {
	name, err := h.StartRecognize(ctx, url, req)
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		done, result, err := h.PollOperation(ctx, url, name)
		if err != nil {
			return nil, err
		}
		if done {
			return result, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
