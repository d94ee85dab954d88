package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayName derives a human-readable name from an option key,
// e.g. "swift_feet" becomes "Swift Feet".
func DisplayName(key string) string {
	words := strings.ReplaceAll(strings.TrimSpace(key), "_", " ")
	return cases.Title(language.English).String(words)
}
