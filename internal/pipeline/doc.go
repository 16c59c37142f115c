// Package pipeline composes a full clip run: lock the staging area, inspect
// the video, resolve its interest signal (cache first, watch page second),
// build the clip plan, and render the planned windows.
package pipeline
