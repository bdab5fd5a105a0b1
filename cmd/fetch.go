package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bigexperiment/youtube-transcript-Api/config"
	"github.com/bigexperiment/youtube-transcript-Api/internal/videoid"
	"github.com/bigexperiment/youtube-transcript-Api/models"
	"github.com/bigexperiment/youtube-transcript-Api/router"
)

var fetchText bool

var fetchCmd = &cobra.Command{
	Use:   "fetch <video-id-or-url>",
	Short: "Print one transcript",
	Long:  "Resolve a YouTube video ID or URL, fetch its transcript and print the same JSON the API returns.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := config.InitLogger(cfg.LogLevel, cfg.LogFormat)
		logger.SetOutput(cmd.ErrOrStderr())

		id, ok := videoid.Resolve(args[0])
		if !ok {
			return fmt.Errorf("invalid YouTube URL or video ID: %s", args[0])
		}

		orch, err := router.NewOrchestrator(cfg, logger, nil)
		if err != nil {
			return err
		}
		t, err := orch.Fetch(cmd.Context(), id)
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{"video_id": id, "language": t.LanguageCode}).Debug("Fetched transcript")

		var payload any = models.NewTranscriptResponse(id, t.Segments)
		if fetchText {
			payload = models.TranscriptTextResponse{VideoID: id, Text: t.Text()}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchText, "text", false, "print {video_id, text} instead of timed segments")
}
