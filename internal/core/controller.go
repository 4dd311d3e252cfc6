package core

import (
	"context"
	"time"
)

// Status is a snapshot of the external player's transport state, produced
// once per poll. Ended is edge-triggered: it is reported true exactly once
// when the current track finishes, then cleared until the next load.
type Status struct {
	Position time.Duration
	Duration time.Duration
	Paused   bool
	Ended    bool
}

// Controller defines the contract with the external playback process.
type Controller interface {
	// Load replaces the current track with the given stream locator.
	Load(ctx context.Context, locator string) error

	// Transport controls are idempotent and no-ops without a loaded track.
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Toggle(ctx context.Context) error

	// Seek moves playback by delta, clamped to [0, duration].
	Seek(ctx context.Context, delta time.Duration) error

	// AdjustVolume changes volume by delta percent, clamped to [0, 100].
	AdjustVolume(ctx context.Context, delta int) error

	// SetVolume sets an absolute volume percent, clamped to [0, 100].
	SetVolume(ctx context.Context, volume int) error

	// Status polls the player's position, duration, pause and end state.
	Status(ctx context.Context) (Status, error)

	// Shutdown terminates the playback process. Safe to call more than once.
	Shutdown() error
}
