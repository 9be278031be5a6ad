// Package orchestrator wires the pipeline end to end: cache lookup,
// audio inspection and downmix, upload, long-running recognition,
// transcript segmentation and refinement, and JSON persistence.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/voicemetrics/diarize-pipeline/audio"
	"github.com/voicemetrics/diarize-pipeline/cache"
	"github.com/voicemetrics/diarize-pipeline/clients"
	cfg "github.com/voicemetrics/diarize-pipeline/config"
	"github.com/voicemetrics/diarize-pipeline/transcript"
)

type Pipeline struct {
	cfg       *cfg.Root
	http      *clients.HTTP
	cache     *cache.Cache
	segmenter *transcript.Segmenter
	refiner   *transcript.Refiner
	log       *logrus.Entry
}

// NewPipeline builds a pipeline from config, loading the refinement
// policy file when one is configured.
func NewPipeline(c *cfg.Root) (*Pipeline, error) {
	policy := transcript.DefaultPolicy()
	if c.Transcript.PolicyFile != "" {
		loaded, err := transcript.LoadPolicy(c.Transcript.PolicyFile)
		if err != nil {
			return nil, err
		}
		policy = loaded
	}
	if c.Transcript.ConfidenceThreshold > 0 {
		policy.ConfidenceThreshold = c.Transcript.ConfidenceThreshold
	}

	p := &Pipeline{
		cfg:       c,
		http:      clients.NewHTTP(),
		segmenter: transcript.NewSegmenter(transcript.WithConfidenceThreshold(policy.ConfidenceThreshold)),
		refiner:   transcript.NewRefiner(transcript.WithPolicy(policy)),
		log:       logrus.WithField("component", "pipeline"),
	}
	if c.Cache.Enabled {
		cc, err := cache.New(c.Cache.Dir)
		if err != nil {
			return nil, err
		}
		p.cache = cc
	}
	return p, nil
}

// Run processes one recording to its two JSON artifacts.
func (p *Pipeline) Run(ctx context.Context, audioPath string) (*Result, error) {
	name := filepath.Base(audioPath)
	p.log.WithField("file", audioPath).Info("processing recording")

	if p.cache != nil {
		if resp, ok := p.cache.Load(name); ok {
			p.log.Info("using cached recognition response")
			return p.process(resp, name, true)
		}
	}

	resp, err := p.recognize(ctx, audioPath)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.Save(name, resp); err != nil {
			p.log.WithError(err).Warn("could not cache recognition response")
		}
	}

	return p.process(resp, name, false)
}

// recognize runs the remote half of the pipeline: inspect, downmix,
// upload, recognize. The temporary bucket and any temporary mono file
// are removed before it returns.
func (p *Pipeline) recognize(ctx context.Context, audioPath string) (*clients.RecognizeResponse, error) {
	info, err := audio.Inspect(audioPath)
	if err != nil {
		return nil, err
	}
	p.log.WithFields(logrus.Fields{
		"sample_rate": info.SampleRate,
		"channels":    info.Channels,
	}).Info("inspected recording")

	uploadPath := audioPath
	if info.Channels > 1 {
		tmp, err := os.CreateTemp("", "mono-*.wav")
		if err != nil {
			return nil, fmt.Errorf("create temp file: %w", err)
		}
		tmp.Close()
		defer os.Remove(tmp.Name())

		p.log.Info("downmixing recording to mono")
		if err := audio.ConvertToMono(ctx, audioPath, tmp.Name()); err != nil {
			return nil, err
		}
		uploadPath = tmp.Name()
	}

	bucket := fmt.Sprintf("temp-audio-bucket-%d", time.Now().Unix())
	object := filepath.Base(uploadPath)
	uri, err := p.http.UploadObject(ctx, p.cfg.Storage.URL, bucket, object, uploadPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := p.http.DeleteBucket(context.WithoutCancel(ctx), p.cfg.Storage.URL, bucket); err != nil {
			p.log.WithError(err).WithField("bucket", bucket).Warn("could not delete temporary bucket")
		}
	}()
	p.log.WithField("uri", uri).Info("recording uploaded")

	req := clients.RecognizeRequest{
		URI:             uri,
		SampleRateHertz: info.SampleRate,
		LanguageCode:    p.cfg.Recognizer.LanguageCode,
		Diarization: clients.DiarizationConfig{
			MinSpeakerCount: p.cfg.Recognizer.MinSpeakerCount,
			MaxSpeakerCount: p.cfg.Recognizer.MaxSpeakerCount,
		},
	}
	p.log.Info("recognition started, this may take a while for long recordings")
	resp, err := p.http.Recognize(ctx, p.cfg.Recognizer.URL, req, p.cfg.Recognizer.PollInterval)
	if err != nil {
		return nil, err
	}
	p.log.Info("recognition complete")
	return resp, nil
}

// process runs the transcript core over the response and persists both
// outputs.
func (p *Pipeline) process(resp *clients.RecognizeResponse, name string, fromCache bool) (*Result, error) {
	words := resp.Words()
	utts := p.refiner.Refine(p.segmenter.Segment(words))
	p.log.WithFields(logrus.Fields{
		"words":      len(words),
		"utterances": len(utts),
	}).Info("transcript refined")

	wordPath, uttPath, err := p.persist(name, words, utts)
	if err != nil {
		return nil, err
	}

	return &Result{
		Words:         words,
		Utterances:    utts,
		WordPath:      wordPath,
		UtterancePath: uttPath,
		FromCache:     fromCache,
	}, nil
}
