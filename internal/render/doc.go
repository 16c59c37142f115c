// Package render cuts planned clip windows out of a downloaded video with
// ffmpeg, reframing each clip into a vertical 9:16 canvas with a blurred
// background fill.
package render
