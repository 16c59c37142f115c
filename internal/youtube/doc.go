// Package youtube fetches a video's interest markers from its watch page.
//
// YouTube embeds heatmap and chapter data in the ytInitialData blob of the
// watch page HTML. The client extracts that blob, walks the player overlay
// renderers, and decodes HEATSEEKER heat markers and DESCRIPTION_CHAPTERS
// entries into the neutral signal types the planner consumes. Heat markers
// are labeled with the chapter they fall in when chapters exist.
package youtube
