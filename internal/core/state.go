package core

import "time"

// PlaybackState represents the current playback state.
type PlaybackState struct {
	Track    *Track        `json:"track"`
	Position time.Duration `json:"position"`
	Duration time.Duration `json:"duration"`
	Volume   int           `json:"volume"`
	Paused   bool          `json:"paused"`
}

// HasTrack returns true if there is an active track.
func (s *PlaybackState) HasTrack() bool {
	return s != nil && s.Track != nil
}

// ProgressPercent returns playback progress as a percentage (0-100).
func (s *PlaybackState) ProgressPercent() float64 {
	if s == nil || s.Duration == 0 {
		return 0
	}
	return float64(s.Position) / float64(s.Duration) * 100
}
