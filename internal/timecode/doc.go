// Package timecode converts between fractional seconds and the textual
// timestamp notations used by WebVTT, SubRip, and plain-text transcripts.
package timecode
