// Package services holds cross-cutting helpers for collaborator
// implementations: the sentinel error taxonomy used to classify failures at
// the task boundary, and context annotations consumed by logging.
package services
