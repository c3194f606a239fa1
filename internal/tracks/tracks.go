package tracks

import (
	"vidscribe/internal/videourl"
)

// Catalog describes the subtitle tracks a video exposes. Slice order is the
// order the platform reported, which the selector uses as a deterministic
// tie-break. A Catalog is discovered once per task and never mutated.
type Catalog struct {
	Manual []string
	Auto   []string
}

// Empty reports whether the catalog has no tracks in either tier.
func (c Catalog) Empty() bool {
	return len(c.Manual) == 0 && len(c.Auto) == 0
}

// Contains reports whether a language appears in either tier.
func (c Catalog) Contains(language string) bool {
	return contains(c.Manual, language) || contains(c.Auto, language)
}

// Selection is the selector's pick: a language plus whether the chosen track
// is machine-generated.
type Selection struct {
	Language  string
	Automatic bool
}

// Priority returns the ordered language preference list for a platform.
// Users can override this via configuration; these are the defaults.
func Priority(platform videourl.Platform) []string {
	switch platform {
	case videourl.PlatformBilibili:
		return []string{"zh-Hans", "zh-Hant", "zh", "en"}
	case videourl.PlatformYouTube:
		return []string{"en", "zh-Hans", "zh", "zh-Hant"}
	default:
		return []string{"zh-Hans", "en", "zh"}
	}
}

// Select picks the best track from a catalog. A pinned language wins if
// present, preferring the manual tier; a pinned language absent from both
// tiers falls through to automatic selection (callers should warn). Without a
// pin, manual tracks beat automatic ones unconditionally, the priority list
// orders choices within the tier, and the first catalog entry breaks ties.
// Select fails only when the catalog is empty.
func Select(catalog Catalog, pinned string, priority []string) (Selection, bool) {
	if pinned != "" {
		if contains(catalog.Manual, pinned) {
			return Selection{Language: pinned}, true
		}
		if contains(catalog.Auto, pinned) {
			return Selection{Language: pinned, Automatic: true}, true
		}
	}
	if len(catalog.Manual) > 0 {
		return Selection{Language: pickByPriority(catalog.Manual, priority)}, true
	}
	if len(catalog.Auto) > 0 {
		return Selection{Language: pickByPriority(catalog.Auto, priority), Automatic: true}, true
	}
	return Selection{}, false
}

func pickByPriority(available []string, priority []string) string {
	for _, lang := range priority {
		if contains(available, lang) {
			return lang
		}
	}
	return available[0]
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
