// Package media defines the contracts the task orchestrator consumes from
// its external collaborators: the platform fetcher and the speech
// transcription engine.
package media
