// Package watch observes a running player and turns state polls into a
// stream of discrete playback events, for following along from another
// terminal.
package watch

import (
	"context"
	"time"
)

// Snapshot is one observation of the player's state.
type Snapshot struct {
	Title    string
	Position time.Duration
	Duration time.Duration
	Volume   int
	Paused   bool
	Idle     bool
}

// Player is the minimal polling surface the watcher needs.
type Player interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// EventType represents the type of playback event.
type EventType int

const (
	EventTrackChange EventType = iota
	EventTrackComplete
	EventTrackSkip
	EventPause
	EventResume
	EventVolumeChange
	EventStop
)

// Event represents a playback state change.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Previous  *Snapshot
	Current   *Snapshot
}

// Watcher polls a player for state changes and emits events.
type Watcher struct {
	player   Player
	interval time.Duration
	events   chan Event
	done     chan struct{}
}

// NewWatcher creates a new state watcher.
func NewWatcher(player Player, interval time.Duration) *Watcher {
	if interval == 0 {
		interval = time.Second
	}
	return &Watcher{
		player:   player,
		interval: interval,
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
	}
}

// Events returns the channel of playback events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins polling for state changes. It returns when the context is
// cancelled, Stop is called, or a poll fails (player gone).
func (w *Watcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.events)

	var prev *Snapshot
	if snap, err := w.player.Snapshot(ctx); err == nil {
		prev = &snap
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case <-ticker.C:
			snap, err := w.player.Snapshot(ctx)
			if err != nil {
				return err
			}

			for _, e := range diffSnapshots(prev, &snap) {
				select {
				case w.events <- e:
				default:
					// Drop event if channel is full
				}
			}
			prev = &snap
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
}

// diffSnapshots compares two observations and returns detected events.
func diffSnapshots(prev, curr *Snapshot) []Event {
	if curr == nil {
		return nil
	}

	now := time.Now()
	var events []Event

	emit := func(t EventType) {
		events = append(events, Event{
			Type:      t,
			Timestamp: now,
			Previous:  prev,
			Current:   curr,
		})
	}

	// First poll: report what is already playing.
	if prev == nil {
		if !curr.Idle && curr.Title != "" {
			emit(EventTrackChange)
		}
		return events
	}

	switch {
	case !prev.Idle && curr.Idle:
		if nearEnd(prev) {
			emit(EventTrackComplete)
		} else {
			emit(EventStop)
		}
	case prev.Title != curr.Title && curr.Title != "":
		if prev.Title != "" && !nearEnd(prev) {
			emit(EventTrackSkip)
		}
		emit(EventTrackChange)
	}

	if !curr.Idle {
		if !prev.Paused && curr.Paused {
			emit(EventPause)
		} else if prev.Paused && !curr.Paused && prev.Title == curr.Title {
			emit(EventResume)
		}
	}

	if prev.Volume != curr.Volume {
		emit(EventVolumeChange)
	}

	return events
}

// nearEnd reports whether the snapshot was within the last 5% of its track,
// which is how a natural finish is told apart from a skip or stop.
func nearEnd(s *Snapshot) bool {
	if s.Duration == 0 {
		return false
	}
	return float64(s.Position) >= float64(s.Duration)*0.95
}
