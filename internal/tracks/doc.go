// Package tracks chooses the best available subtitle track for a video given
// platform-specific language priorities and optional user pins.
package tracks
