// Package task runs the subtitle-first transcript pipeline. The orchestrator
// owns a single active task at a time, drives it through a forward-only
// status machine, and reports observable progress through an event sink.
package task
