package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	// Provider errors.
	ErrNotFound    = errors.New("no results found")
	ErrNetwork     = errors.New("network error")
	ErrRateLimited = errors.New("rate limited")
	ErrRestricted  = errors.New("track restricted")

	// Player errors.
	ErrLoadFailed    = errors.New("could not load track")
	ErrNoTrackLoaded = errors.New("no track loaded")
	ErrPlayerGone    = errors.New("player process unavailable")

	// Persistence errors.
	ErrDuplicatePlaylist = errors.New("playlist already exists")
	ErrEmptyPlaylistName = errors.New("playlist name must not be empty")
	ErrPlaylistNotFound  = errors.New("playlist not found")

	// Config errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// PlumeError wraps an error with a user-friendly suggestion.
type PlumeError struct {
	Err        error
	Suggestion string
}

func (e *PlumeError) Error() string {
	return e.Err.Error()
}

func (e *PlumeError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &PlumeError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check if it's already a PlumeError with suggestion
	var plumeErr *PlumeError
	if errors.As(err, &plumeErr) && plumeErr.Suggestion != "" {
		return plumeErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, ErrRestricted) || strings.Contains(errStr, "restricted") ||
		strings.Contains(errStr, "sign in to confirm") {
		return "This track cannot be streamed. Set PLUME_COOKIES or provider.cookies_file to pass browser cookies, or skip to the next track"
	}

	if errors.Is(err, ErrRateLimited) || strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "429") {
		return "Too many requests. Wait a moment and retry the search"
	}

	if errors.Is(err, ErrNetwork) || strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "timeout") || strings.Contains(errStr, "connection refused") {
		return "Check your internet connection and retry"
	}

	if errors.Is(err, ErrPlayerGone) || strings.Contains(errStr, "player process") {
		return "The mpv process died. Playing another track will restart it"
	}

	if errors.Is(err, ErrLoadFailed) {
		return "The stream could not be opened. Try another track"
	}

	if errors.Is(err, ErrDuplicatePlaylist) {
		return "Pick a different playlist name"
	}

	if strings.Contains(errStr, "executable file not found") {
		return "Make sure mpv and yt-dlp are installed and on your PATH"
	}

	if errors.Is(err, ErrInvalidConfig) || strings.Contains(errStr, "config") {
		return "Run 'plume config init' to set up your configuration"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
