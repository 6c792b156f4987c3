package bot

import "strings"

// Discord payload limits
const (
	MaxMessageContent   = 2000
	MaxEmbedDescription = 4096
	MaxFieldValue       = 1024
)

// Truncate shortens s so the result fits in limit runes, ending in "..."
// when it had to cut
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}
