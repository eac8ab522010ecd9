package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	underlying := errors.New("permission denied")
	err := Wrap(ErrIO, "organizer", "move file", "failed to relocate a.txt", underlying)

	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO marker, got %v", err)
	}
	if !errors.Is(err, underlying) {
		t.Fatalf("expected underlying cause to be preserved, got %v", err)
	}
	for _, want := range []string{"organizer", "move file", "a.txt", "permission denied"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err.Error(), want)
		}
	}
}

func TestWrapNilMarkerDefaultsToIO(t *testing.T) {
	err := Wrap(nil, "dupes", "hash", "", nil)
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO fallback, got %v", err)
	}
}

func TestWrapEmptyContext(t *testing.T) {
	err := Wrap(ErrConfiguration, "", "", "", nil)
	if !strings.Contains(err.Error(), "operation failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}
