package ffmpeg

// Args constructs the complete engine argument slice for one conversion.
// The command copies the video stream unmodified, re-encodes audio to AAC at
// the configured bitrate, and enables faststart so the output can be played
// while still downloading. Because only audio is re-encoded, the fastest
// preset costs nothing in quality.
func Args(input, output, audioBitrate string) []string {
	return []string{
		"-i", input,
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", audioBitrate,
		"-movflags", "+faststart",
		"-threads", "0",
		"-preset", "ultrafast",
		"-v", "error",
		"-stats",
		"-y",
		output,
	}
}
