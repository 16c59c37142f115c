// Command heatcut plans and renders short clips from a YouTube video's
// viewer heatmap or chapter list.
package main
