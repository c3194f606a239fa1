package task

import "fmt"

// Status represents the lifecycle of a transcript task.
type Status string

const (
	StatusIdle                Status = "idle"
	StatusFetchingInfo        Status = "fetching_info"
	StatusCheckingSubtitle    Status = "checking_subtitle"
	StatusDownloadingSubtitle Status = "downloading_subtitle"
	StatusParsingSubtitle     Status = "parsing_subtitle"
	StatusDownloadingAudio    Status = "downloading_audio"
	StatusTranscribing        Status = "transcribing"
	StatusCompleted           Status = "completed"
	StatusCancelled           Status = "cancelled"
	StatusError               Status = "error"
)

// statusRank orders the working statuses along the pipeline. A transition may
// skip ranks (the transcription fallback skips the subtitle stages) but never
// move backward.
var statusRank = map[Status]int{
	StatusIdle:                0,
	StatusFetchingInfo:        1,
	StatusCheckingSubtitle:    2,
	StatusDownloadingSubtitle: 3,
	StatusParsingSubtitle:     4,
	StatusDownloadingAudio:    5,
	StatusTranscribing:        6,
	StatusCompleted:           7,
}

// ParseStatus validates a status string.
func ParseStatus(value string) (Status, error) {
	status := Status(value)
	if _, ok := statusRank[status]; ok {
		return status, nil
	}
	switch status {
	case StatusCancelled, StatusError:
		return status, nil
	}
	return "", fmt.Errorf("status: unknown value %q", value)
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusError:
		return true
	}
	return false
}

// IsWorking reports whether the task is actively processing.
func (s Status) IsWorking() bool {
	return s != StatusIdle && !s.IsTerminal()
}

// CanTransition reports whether from may move to to. Working statuses only
// advance forward, cancelled and error absorb any non-terminal status, and
// terminal statuses accept nothing.
func (s Status) CanTransition(to Status) bool {
	if s.IsTerminal() {
		return false
	}
	if to == StatusCancelled || to == StatusError {
		return true
	}
	fromRank, ok := statusRank[s]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}
