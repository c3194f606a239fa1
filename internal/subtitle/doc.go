// Package subtitle parses WebVTT and SubRip timed text into segment
// sequences, normalizes them for transcript output, and re-emits plain text,
// SRT, or WebVTT. Parsing is best effort: structurally broken input degrades
// to partial or generic output instead of failing.
package subtitle
