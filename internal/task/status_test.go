package task

import "testing"

func TestStatusAdvancesForwardOnly(t *testing.T) {
	forward := []Status{
		StatusIdle,
		StatusFetchingInfo,
		StatusCheckingSubtitle,
		StatusDownloadingSubtitle,
		StatusParsingSubtitle,
		StatusDownloadingAudio,
		StatusTranscribing,
		StatusCompleted,
	}
	for i := 0; i < len(forward)-1; i++ {
		if !forward[i].CanTransition(forward[i+1]) {
			t.Fatalf("%s -> %s should be allowed", forward[i], forward[i+1])
		}
		if forward[i+1].CanTransition(forward[i]) {
			t.Fatalf("%s -> %s should be rejected", forward[i+1], forward[i])
		}
	}
}

func TestStatusAllowsSkippingStages(t *testing.T) {
	if !StatusCheckingSubtitle.CanTransition(StatusDownloadingAudio) {
		t.Fatal("fallback skip from checking to audio download should be allowed")
	}
	if !StatusFetchingInfo.CanTransition(StatusDownloadingAudio) {
		t.Fatal("forced fallback skip should be allowed")
	}
}

func TestTerminalStatusesAbsorb(t *testing.T) {
	for _, from := range []Status{StatusIdle, StatusFetchingInfo, StatusTranscribing} {
		if !from.CanTransition(StatusCancelled) {
			t.Fatalf("%s -> cancelled should be allowed", from)
		}
		if !from.CanTransition(StatusError) {
			t.Fatalf("%s -> error should be allowed", from)
		}
	}
	for _, terminal := range []Status{StatusCompleted, StatusCancelled, StatusError} {
		if !terminal.IsTerminal() {
			t.Fatalf("%s should be terminal", terminal)
		}
		for _, to := range []Status{StatusFetchingInfo, StatusCompleted, StatusCancelled, StatusError} {
			if terminal.CanTransition(to) {
				t.Fatalf("%s -> %s should be rejected", terminal, to)
			}
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, value := range []string{"idle", "transcribing", "completed", "cancelled", "error"} {
		if _, err := ParseStatus(value); err != nil {
			t.Fatalf("ParseStatus(%q): %v", value, err)
		}
	}
	if _, err := ParseStatus("paused"); err == nil {
		t.Fatal("unknown status should be rejected")
	}
}

func TestIsWorking(t *testing.T) {
	if StatusIdle.IsWorking() || StatusCompleted.IsWorking() {
		t.Fatal("idle and terminal statuses are not working")
	}
	if !StatusTranscribing.IsWorking() {
		t.Fatal("transcribing is working")
	}
}
