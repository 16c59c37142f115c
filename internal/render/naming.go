package render

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// clipFileName derives a filesystem-safe base name for a clip from its
// source label. Unlabeled windows fall back to a random identifier so two
// clips never collide.
func clipFileName(label string) string {
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range label {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	name := strings.TrimSpace(cleaned.String())
	if name == "" {
		return uuid.NewString()
	}
	name = cases.Title(language.Und).String(name)
	return strings.ReplaceAll(name, " ", "-")
}
