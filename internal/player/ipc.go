package player

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	plumeerr "github.com/plume-player/plume/internal/errors"
)

// ipc is the command channel to a running player process. The concrete
// implementation speaks mpv's JSON IPC protocol over a unix socket; tests
// substitute a stub.
type ipc interface {
	command(ctx context.Context, args ...any) (json.RawMessage, error)
	close() error
}

// commandPayload is a single request on the wire.
type commandPayload struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id"`
}

// responsePayload is a single newline-delimited JSON message from mpv.
// Replies carry a request_id; asynchronous events carry an event name.
type responsePayload struct {
	Err       string          `json:"error"`
	RequestID int             `json:"request_id"`
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
}

const resultSuccess = "success"

// socketIPC dispatches commands over the mpv unix socket and matches replies
// to callers by request ID.
type socketIPC struct {
	conn net.Conn

	writeMu sync.Mutex

	mu       sync.Mutex
	requests map[int]chan responsePayload
	nextID   int
	closed   bool
}

// dialIPC connects to the player socket, retrying until timeout. The player
// process creates the socket asynchronously after spawn, so the first dials
// routinely fail.
func dialIPC(path string, timeout time.Duration) (*socketIPC, error) {
	deadline := time.Now().Add(timeout)

	var conn net.Conn
	var err error
	for {
		conn, err = net.Dial("unix", path)
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("connecting to player socket %s: %w", path, err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	s := &socketIPC{
		conn:     conn,
		requests: make(map[int]chan responsePayload),
		nextID:   1,
	}
	go s.readLoop()
	return s, nil
}

func (s *socketIPC) readLoop() {
	sc := bufio.NewScanner(s.conn)
	sc.Buffer(make([]byte, 0, 4096), 256*1024)
	for sc.Scan() {
		var resp responsePayload
		if err := json.Unmarshal(sc.Bytes(), &resp); err != nil {
			continue
		}
		if resp.Event != "" {
			// Events are unsolicited; playback state is polled instead.
			continue
		}

		s.mu.Lock()
		ch, ok := s.requests[resp.RequestID]
		if ok {
			delete(s.requests, resp.RequestID)
		}
		s.mu.Unlock()
		if ok {
			ch <- resp
		}
	}

	// Socket gone: fail all waiters.
	s.mu.Lock()
	s.closed = true
	for id, ch := range s.requests {
		delete(s.requests, id)
		close(ch)
	}
	s.mu.Unlock()
}

func (s *socketIPC) command(ctx context.Context, args ...any) (json.RawMessage, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, plumeerr.ErrPlayerGone
	}
	id := s.nextID
	s.nextID++
	ch := make(chan responsePayload, 1)
	s.requests[id] = ch
	s.mu.Unlock()

	payload, err := json.Marshal(commandPayload{Command: args, RequestID: id})
	if err != nil {
		return nil, err
	}
	payload = append(payload, '\n')

	s.writeMu.Lock()
	_, err = s.conn.Write(payload)
	s.writeMu.Unlock()
	if err != nil {
		s.mu.Lock()
		delete(s.requests, id)
		s.mu.Unlock()
		return nil, plumeerr.ErrPlayerGone
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return nil, plumeerr.ErrPlayerGone
		}
		if resp.Err != resultSuccess {
			return nil, fmt.Errorf("player command failed: %s", resp.Err)
		}
		return resp.Data, nil
	case <-ctx.Done():
		s.mu.Lock()
		delete(s.requests, id)
		s.mu.Unlock()
		return nil, ctx.Err()
	}
}

func (s *socketIPC) close() error {
	return s.conn.Close()
}
