package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/voicemetrics/diarize-pipeline/config"
	"github.com/voicemetrics/diarize-pipeline/orchestrator"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("pipeline failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		noCache     bool
		language    string
		minSpeakers int
		maxSpeakers int
	)

	cmd := &cobra.Command{
		Use:           "diarize-pipeline <audio.wav>",
		Short:         "Speaker-attributed transcription of conversation recordings",
		Long:          "Obtains a word-level diarized transcription of a WAV recording from the recognition service and refines it into a clean, speaker-attributed transcript.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			conf, err := cfg.Load(configPath)
			if err != nil {
				return err
			}
			if noCache {
				conf.Cache.Enabled = false
			}
			if language != "" {
				conf.Recognizer.LanguageCode = language
			}
			if minSpeakers > 0 {
				conf.Recognizer.MinSpeakerCount = minSpeakers
			}
			if maxSpeakers > 0 {
				conf.Recognizer.MaxSpeakerCount = maxSpeakers
			}

			level, err := logrus.ParseLevel(conf.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", conf.LogLevel, err)
			}
			logrus.SetLevel(level)

			p, err := orchestrator.NewPipeline(conf)
			if err != nil {
				return err
			}
			res, err := p.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"utterances":    len(res.Utterances),
				"words":         len(res.Words),
				"word_level":    res.WordPath,
				"speaker_level": res.UtterancePath,
				"from_cache":    res.FromCache,
			}).Info("transcription complete")

			for _, u := range res.Utterances {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", u.Speaker, u.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config YAML (default: config/$CONFIG_ENV/config.yaml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the recognition response cache")
	cmd.Flags().StringVar(&language, "language", "", "recognition language code override (e.g. en-US)")
	cmd.Flags().IntVar(&minSpeakers, "min-speakers", 0, "minimum number of speakers to detect")
	cmd.Flags().IntVar(&maxSpeakers, "max-speakers", 0, "maximum number of speakers to detect")
	return cmd
}
