// Package ffmpeg builds and runs the external transcoding engine command.
//
// The invocation policy is fixed and source-preserving: the video elementary
// stream is copied verbatim, only audio is re-encoded (AAC at a configured
// bitrate), and the container is laid out for streaming playback. The runner
// captures stderr for diagnostics and reports the exit status; callers decide
// what a failure means for the file being converted.
package ffmpeg
