// Package videourl detects which platform a video URL belongs to and strips
// tracking parameters down to the canonical watch URL.
package videourl
