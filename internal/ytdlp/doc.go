// Package ytdlp wraps the yt-dlp binary for metadata inspection and video
// download. Command execution goes through an Executor interface so tests can
// inject fakes.
package ytdlp
