package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	err := Wrap(ErrExternalTool, "downloading_audio", "run yt-dlp", "exit status 1", nil)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected marker to survive wrapping: %v", err)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ErrTransient, "fetching_info", "probe", "", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to survive wrapping: %v", err)
	}
}

func TestWrapNilMarkerDefaultsTransient(t *testing.T) {
	err := Wrap(nil, "", "", "something", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("nil marker should default to transient: %v", err)
	}
}

func TestReasonDropsMarkerPrefix(t *testing.T) {
	err := Wrap(ErrNotFound, "checking_subtitle", "select track", "no usable subtitle", nil)
	want := "checking_subtitle: select track: no usable subtitle"
	if got := Reason(err); got != want {
		t.Fatalf("Reason = %q, want %q", got, want)
	}
	if Reason(nil) != "" {
		t.Fatal("nil error should yield empty reason")
	}
}
