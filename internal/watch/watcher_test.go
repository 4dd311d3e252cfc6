package watch

import (
	"testing"
	"time"
)

func snap(title string, pos, dur time.Duration, paused, idle bool, volume int) *Snapshot {
	return &Snapshot{Title: title, Position: pos, Duration: dur, Paused: paused, Idle: idle, Volume: volume}
}

func types(events []Event) []EventType {
	out := make([]EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func TestDiffSnapshots(t *testing.T) {
	tests := []struct {
		name string
		prev *Snapshot
		curr *Snapshot
		want []EventType
	}{
		{
			"first poll while playing",
			nil,
			snap("Song A", 10*time.Second, 3*time.Minute, false, false, 50),
			[]EventType{EventTrackChange},
		},
		{
			"first poll while idle",
			nil,
			snap("", 0, 0, false, true, 50),
			nil,
		},
		{
			"no change",
			snap("Song A", 10*time.Second, 3*time.Minute, false, false, 50),
			snap("Song A", 11*time.Second, 3*time.Minute, false, false, 50),
			nil,
		},
		{
			"pause",
			snap("Song A", 10*time.Second, 3*time.Minute, false, false, 50),
			snap("Song A", 10*time.Second, 3*time.Minute, true, false, 50),
			[]EventType{EventPause},
		},
		{
			"resume",
			snap("Song A", 10*time.Second, 3*time.Minute, true, false, 50),
			snap("Song A", 11*time.Second, 3*time.Minute, false, false, 50),
			[]EventType{EventResume},
		},
		{
			"natural finish into idle",
			snap("Song A", 178*time.Second, 3*time.Minute, false, false, 50),
			snap("", 0, 0, false, true, 50),
			[]EventType{EventTrackComplete},
		},
		{
			"stop mid-track",
			snap("Song A", 30*time.Second, 3*time.Minute, false, false, 50),
			snap("", 0, 0, false, true, 50),
			[]EventType{EventStop},
		},
		{
			"skip to next track",
			snap("Song A", 30*time.Second, 3*time.Minute, false, false, 50),
			snap("Song B", 0, 4*time.Minute, false, false, 50),
			[]EventType{EventTrackSkip, EventTrackChange},
		},
		{
			"advance after finish",
			snap("Song A", 179*time.Second, 3*time.Minute, false, false, 50),
			snap("Song B", 0, 4*time.Minute, false, false, 50),
			[]EventType{EventTrackChange},
		},
		{
			"volume change",
			snap("Song A", 10*time.Second, 3*time.Minute, false, false, 50),
			snap("Song A", 11*time.Second, 3*time.Minute, false, false, 55),
			[]EventType{EventVolumeChange},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := types(diffSnapshots(tt.prev, tt.curr))
			if len(got) != len(tt.want) {
				t.Fatalf("diffSnapshots() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("diffSnapshots() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFormatterDefaultLine(t *testing.T) {
	f := NewFormatter()
	e := Event{
		Type:    EventTrackChange,
		Current: snap("Song A", 0, 3*time.Minute, false, false, 50),
	}
	if got := f.Format(e); got != "Now playing: Song A" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormatterTemplate(t *testing.T) {
	f := NewFormatter(WithTemplate("{{.Type}}:{{.Title}}"))
	e := Event{
		Type:    EventPause,
		Current: snap("Song A", 0, 3*time.Minute, true, false, 50),
	}
	if got := f.Format(e); got != "pause:Song A" {
		t.Errorf("Format() = %q", got)
	}
}
