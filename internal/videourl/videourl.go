package videourl

import "regexp"

// Platform identifies a supported video site.
type Platform string

const (
	PlatformBilibili Platform = "bilibili"
	PlatformYouTube  Platform = "youtube"
	PlatformUnknown  Platform = ""
)

var (
	bilibiliHostRe = regexp.MustCompile(`(?:bilibili\.com|b23\.tv)`)
	youtubeHostRe  = regexp.MustCompile(`(?:youtube\.com|youtu\.be)`)

	bilibiliVideoRe = regexp.MustCompile(`(https?://(?:www\.)?bilibili\.com/video/(BV\w+|av\d+))`)
	youtubeVideoRe  = regexp.MustCompile(`https?://(?:www\.)?(?:youtube\.com/watch\?v=|youtu\.be/)([\w-]+)`)
)

// Detect returns the platform a URL belongs to, or PlatformUnknown.
func Detect(url string) Platform {
	switch {
	case bilibiliHostRe.MatchString(url):
		return PlatformBilibili
	case youtubeHostRe.MatchString(url):
		return PlatformYouTube
	default:
		return PlatformUnknown
	}
}

// Clean strips tracking parameters, reducing a URL to its canonical watch
// form. YouTube short links are rewritten to the standard watch URL.
// Unrecognized URLs pass through unchanged.
func Clean(url string) string {
	if m := bilibiliVideoRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	if m := youtubeVideoRe.FindStringSubmatch(url); m != nil {
		return "https://www.youtube.com/watch?v=" + m[1]
	}
	return url
}

// ExtractID returns the platform and native video identifier embedded in a
// URL. Both values are empty when the URL is not recognized.
func ExtractID(url string) (Platform, string) {
	if m := bilibiliVideoRe.FindStringSubmatch(url); m != nil {
		return PlatformBilibili, m[2]
	}
	if m := youtubeVideoRe.FindStringSubmatch(url); m != nil {
		return PlatformYouTube, m[1]
	}
	return PlatformUnknown, ""
}
