package textutil

import "strings"

// MaxTitleLength bounds sanitized titles so run folder names stay well under
// filesystem limits.
const MaxTitleLength = 100

// titleReplacer maps filesystem-illegal characters to underscores.
var titleReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// SanitizeTitle makes a video title safe for use as a file or folder name.
// Illegal characters become underscores, surrounding whitespace is trimmed,
// and the result is truncated to MaxTitleLength runes. An empty result falls
// back to "video".
func SanitizeTitle(title string) string {
	title = strings.TrimSpace(titleReplacer.Replace(title))
	if runes := []rune(title); len(runes) > MaxTitleLength {
		title = string(runes[:MaxTitleLength])
	}
	if title == "" {
		return "video"
	}
	return title
}
