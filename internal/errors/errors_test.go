package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestWithSuggestion(t *testing.T) {
	err := WithSuggestion(ErrNotFound, "try a broader query")

	if !errors.Is(err, ErrNotFound) {
		t.Error("wrapped error should match the sentinel")
	}
	if got := GetSuggestion(err); got != "try a broader query" {
		t.Errorf("GetSuggestion() = %q, want the explicit suggestion", got)
	}
}

func TestGetSuggestionKnownErrors(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrRestricted, "PLUME_COOKIES"},
		{ErrRateLimited, "Wait a moment"},
		{ErrNetwork, "internet connection"},
		{ErrPlayerGone, "mpv process"},
		{ErrDuplicatePlaylist, "different playlist name"},
	}
	for _, tt := range tests {
		got := GetSuggestion(tt.err)
		if !strings.Contains(got, tt.want) {
			t.Errorf("GetSuggestion(%v) = %q, want it to mention %q", tt.err, got, tt.want)
		}
	}
}

func TestGetSuggestionWrapped(t *testing.T) {
	err := fmt.Errorf("searching: %w", ErrRateLimited)
	if got := GetSuggestion(err); got == "" {
		t.Error("wrapped sentinel should still produce a suggestion")
	}
}

func TestGetSuggestionUnknown(t *testing.T) {
	if got := GetSuggestion(errors.New("something odd")); got != "" {
		t.Errorf("GetSuggestion(unknown) = %q, want empty", got)
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}

	got := Format(ErrRateLimited)
	if !strings.HasPrefix(got, "Error: rate limited") {
		t.Errorf("Format() = %q, want it to start with the error", got)
	}
	if !strings.Contains(got, "Suggestion:") {
		t.Errorf("Format() = %q, want it to include a suggestion", got)
	}
}
