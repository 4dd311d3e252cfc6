// Package player drives an external mpv process over its JSON IPC socket.
// mpv is spawned idle with no video and no terminal UI; tracks are handed to
// it as resolved stream URLs and transport state is polled by the UI tick.
package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/plume-player/plume/internal/config"
	"github.com/plume-player/plume/internal/core"
	plumeerr "github.com/plume-player/plume/internal/errors"
	"github.com/plume-player/plume/internal/watch"
)

const spawnTimeout = 5 * time.Second

// MPV is a core.Controller backed by an mpv subprocess.
type MPV struct {
	binary string
	socket string

	mu      sync.Mutex
	cmd     *exec.Cmd
	conn    ipc
	exited  bool // set under mu by the wait goroutine when the process ends
	loaded  bool
	lastEOF bool
}

// New creates an mpv controller from config. The process is not spawned
// until the first Load.
func New(cfg config.PlayerConfig) *MPV {
	return &MPV{
		binary: cfg.Binary,
		socket: cfg.SocketPath,
	}
}

// Attach connects to an already running player's socket without spawning a
// process. Observers use this to follow playback owned by another instance;
// they should Detach rather than Shutdown when done.
func Attach(cfg config.PlayerConfig) (*MPV, error) {
	conn, err := dialIPC(cfg.SocketPath, time.Second)
	if err != nil {
		return nil, err
	}
	return &MPV{
		binary: cfg.Binary,
		socket: cfg.SocketPath,
		conn:   conn,
		loaded: true,
	}, nil
}

// Detach closes the IPC connection, leaving the player process running.
func (p *MPV) Detach() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	err := p.conn.close()
	p.conn = nil
	return err
}

// ensureRunning spawns mpv and connects the IPC socket if needed. Callers
// hold p.mu.
func (p *MPV) ensureRunning() error {
	if p.conn != nil && p.cmd != nil && !p.exited {
		return nil
	}
	if p.conn != nil {
		p.conn.close()
		p.conn = nil
	}

	// A stale socket file from a crashed run blocks the new process.
	os.Remove(p.socket)

	cmd := exec.Command(p.binary,
		"--idle=yes",
		"--no-video",
		"--no-terminal",
		"--input-ipc-server="+p.socket,
	)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawning player: %w", err)
	}
	go func() {
		cmd.Wait()
		p.mu.Lock()
		if p.cmd == cmd {
			p.exited = true
		}
		p.mu.Unlock()
	}()

	conn, err := dialIPC(p.socket, spawnTimeout)
	if err != nil {
		cmd.Process.Kill()
		return err
	}

	p.cmd = cmd
	p.conn = conn
	p.exited = false
	return nil
}

// Load replaces the current track with the given stream locator, spawning
// the player process if it is not running.
func (p *MPV) Load(ctx context.Context, locator string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureRunning(); err != nil {
		return fmt.Errorf("%w: %v", plumeerr.ErrLoadFailed, err)
	}

	if _, err := p.conn.command(ctx, "loadfile", locator, "replace"); err != nil {
		return fmt.Errorf("%w: %v", plumeerr.ErrLoadFailed, err)
	}
	if _, err := p.conn.command(ctx, "set_property", "pause", false); err != nil {
		return fmt.Errorf("%w: %v", plumeerr.ErrLoadFailed, err)
	}

	p.loaded = true
	p.lastEOF = false
	return nil
}

func (p *MPV) setPause(ctx context.Context, paused bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.loaded || p.conn == nil {
		return nil
	}
	_, err := p.conn.command(ctx, "set_property", "pause", paused)
	return err
}

// Play resumes playback. No-op without a loaded track.
func (p *MPV) Play(ctx context.Context) error {
	return p.setPause(ctx, false)
}

// Pause pauses playback. No-op without a loaded track.
func (p *MPV) Pause(ctx context.Context) error {
	return p.setPause(ctx, true)
}

// Toggle flips between playing and paused. No-op without a loaded track.
func (p *MPV) Toggle(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.loaded || p.conn == nil {
		return nil
	}
	_, err := p.conn.command(ctx, "cycle", "pause")
	return err
}

// Seek moves playback by delta, clamped to [0, duration]. No-op without a
// loaded track.
func (p *MPV) Seek(ctx context.Context, delta time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.loaded || p.conn == nil {
		return nil
	}

	pos, err := p.floatProperty(ctx, "time-pos")
	if err != nil {
		return err
	}
	dur, err := p.floatProperty(ctx, "duration")
	if err != nil {
		return err
	}

	target := pos + delta.Seconds()
	if target < 0 {
		target = 0
	}
	if dur > 0 && target > dur {
		target = dur
	}

	_, err = p.conn.command(ctx, "seek", target, "absolute")
	return err
}

// AdjustVolume changes the volume by delta percent, clamped to [0, 100].
func (p *MPV) AdjustVolume(ctx context.Context, delta int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}

	vol, err := p.floatProperty(ctx, "volume")
	if err != nil {
		return err
	}

	target := int(vol) + delta
	if target < 0 {
		target = 0
	}
	if target > 100 {
		target = 100
	}

	_, err = p.conn.command(ctx, "set_property", "volume", target)
	return err
}

// Volume returns the current volume percent.
func (p *MPV) Volume(ctx context.Context) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return 0, nil
	}
	vol, err := p.floatProperty(ctx, "volume")
	if err != nil {
		return 0, err
	}
	return int(vol), nil
}

// SetVolume sets the volume to an absolute percent, clamped to [0, 100].
func (p *MPV) SetVolume(ctx context.Context, volume int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	_, err := p.conn.command(ctx, "set_property", "volume", volume)
	return err
}

// Status polls the player's transport state. Ended flips true exactly once
// when the current track reaches end of file, then stays false until the
// next Load.
func (p *MPV) Status(ctx context.Context) (core.Status, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var st core.Status
	if p.conn == nil {
		return st, nil
	}
	if p.exited {
		return st, plumeerr.ErrPlayerGone
	}

	pos, err := p.floatProperty(ctx, "time-pos")
	if err != nil && !isPropertyUnavailable(err) {
		return st, err
	}
	dur, err := p.floatProperty(ctx, "duration")
	if err != nil && !isPropertyUnavailable(err) {
		return st, err
	}
	paused, err := p.boolProperty(ctx, "pause")
	if err != nil && !isPropertyUnavailable(err) {
		return st, err
	}
	eof, err := p.boolProperty(ctx, "eof-reached")
	if err != nil && !isPropertyUnavailable(err) {
		return st, err
	}
	idle, err := p.boolProperty(ctx, "idle-active")
	if err != nil && !isPropertyUnavailable(err) {
		return st, err
	}

	// mpv drops back to idle once the file ends; treat that the same as an
	// explicit eof so a fast poll cadence cannot miss the transition.
	atEnd := p.loaded && (eof || idle)

	st.Position = time.Duration(pos * float64(time.Second))
	st.Duration = time.Duration(dur * float64(time.Second))
	st.Paused = paused
	st.Ended = atEnd && !p.lastEOF
	p.lastEOF = atEnd
	return st, nil
}

// Snapshot reports the player's observable state for the watch command.
func (p *MPV) Snapshot(ctx context.Context) (watch.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var snap watch.Snapshot
	if p.conn == nil {
		return snap, plumeerr.ErrPlayerGone
	}

	title, err := p.stringProperty(ctx, "media-title")
	if err != nil && !isPropertyUnavailable(err) {
		return snap, err
	}
	pos, err := p.floatProperty(ctx, "time-pos")
	if err != nil && !isPropertyUnavailable(err) {
		return snap, err
	}
	dur, err := p.floatProperty(ctx, "duration")
	if err != nil && !isPropertyUnavailable(err) {
		return snap, err
	}
	vol, err := p.floatProperty(ctx, "volume")
	if err != nil && !isPropertyUnavailable(err) {
		return snap, err
	}
	paused, err := p.boolProperty(ctx, "pause")
	if err != nil && !isPropertyUnavailable(err) {
		return snap, err
	}
	idle, err := p.boolProperty(ctx, "idle-active")
	if err != nil && !isPropertyUnavailable(err) {
		return snap, err
	}

	snap.Title = title
	snap.Position = time.Duration(pos * float64(time.Second))
	snap.Duration = time.Duration(dur * float64(time.Second))
	snap.Volume = int(vol)
	snap.Paused = paused
	snap.Idle = idle
	return snap, nil
}

// Shutdown quits the player process. Safe to call more than once.
func (p *MPV) Shutdown() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	p.conn.command(ctx, "quit")
	p.conn.close()
	p.conn = nil
	p.loaded = false

	if p.cmd != nil && p.cmd.Process != nil && !p.exited {
		p.cmd.Process.Kill()
	}
	p.cmd = nil
	os.Remove(p.socket)
	return nil
}

func (p *MPV) floatProperty(ctx context.Context, name string) (float64, error) {
	data, err := p.conn.command(ctx, "get_property", name)
	if err != nil {
		return 0, err
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, nil
	}
	return v, nil
}

func (p *MPV) stringProperty(ctx context.Context, name string) (string, error) {
	data, err := p.conn.command(ctx, "get_property", name)
	if err != nil {
		return "", err
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return "", nil
	}
	return v, nil
}

func (p *MPV) boolProperty(ctx context.Context, name string) (bool, error) {
	data, err := p.conn.command(ctx, "get_property", name)
	if err != nil {
		return false, err
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return false, nil
	}
	return v, nil
}

// isPropertyUnavailable reports whether the error is mpv's way of saying a
// property has no value yet, which happens between idle and the first frame.
func isPropertyUnavailable(err error) bool {
	if err == nil || errors.Is(err, plumeerr.ErrPlayerGone) {
		return false
	}
	return strings.Contains(err.Error(), "property unavailable") ||
		strings.Contains(err.Error(), "property not found")
}
