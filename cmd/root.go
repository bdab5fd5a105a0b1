package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bigexperiment/youtube-transcript-Api/config"
)

// Version is set at build time with -ldflags.
var Version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "ytranscript",
	Short: "YouTube transcript API server and client",
	Long: `ytranscript fetches YouTube captions as timed segments or plain text.
Run "serve" for the HTTP API or "fetch" to print a single transcript.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to a YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fetchCmd)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
