// @title YouTube Transcript API
// @version 1.0
// @description Fetch YouTube video transcripts as timed segments or plain text.
// @BasePath /
package main

import "github.com/bigexperiment/youtube-transcript-Api/cmd"

func main() {
	cmd.Execute()
}
