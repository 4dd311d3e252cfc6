package provider

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os/exec"
	"strings"
	"time"

	"github.com/plume-player/plume/internal/config"
	"github.com/plume-player/plume/internal/core"
	plumeerr "github.com/plume-player/plume/internal/errors"
)

const (
	watchURL    = "https://www.youtube.com/watch?v="
	playlistURL = "https://www.youtube.com/playlist?list="

	// resultsURL with this filter restricts YouTube search results to
	// playlists, which yt-dlp then enumerates in flat-playlist mode.
	playlistSearchURL = "https://www.youtube.com/results?search_query=%s&sp=EgIQAw%%3D%%3D"
)

// PageURL returns the track's web page for opening in a browser.
func PageURL(trackID string) string {
	return watchURL + trackID
}

// runFunc executes the provider binary and returns its stdout and stderr.
// Swapped out in tests.
type runFunc func(ctx context.Context, binary string, args []string) (stdout, stderr []byte, err error)

// YTDLP is a Client backed by the yt-dlp command-line tool.
type YTDLP struct {
	binary  string
	limit   int
	cookies string
	timeout time.Duration
	run     runFunc
}

// NewYTDLP creates a yt-dlp backed provider from config.
func NewYTDLP(cfg config.ProviderConfig) *YTDLP {
	return &YTDLP{
		binary:  cfg.Binary,
		limit:   cfg.SearchLimit,
		cookies: cfg.CookiesFile,
		timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
		run:     runCommand,
	}
}

func runCommand(ctx context.Context, binary string, args []string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

func (y *YTDLP) invoke(ctx context.Context, args ...string) ([]byte, error) {
	if y.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, y.timeout)
		defer cancel()
	}
	if y.cookies != "" {
		args = append([]string{"--cookies", y.cookies}, args...)
	}

	stdout, stderr, err := y.run(ctx, y.binary, args)
	if err != nil {
		return nil, classifyError(stderr, err)
	}
	return stdout, nil
}

// searchEntry is the subset of a flat-playlist JSON line we care about.
type searchEntry struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Uploader      string  `json:"uploader"`
	Channel       string  `json:"channel"`
	Duration      float64 `json:"duration"`
	PlaylistCount int     `json:"playlist_count"`
}

func (e searchEntry) track(pos int) core.Track {
	artist := e.Channel
	if artist == "" {
		artist = e.Uploader
	}
	var artists []string
	if artist != "" {
		artists = []string{artist}
	}
	return core.Track{
		ID:          e.ID,
		Title:       e.Title,
		Artists:     artists,
		Duration:    time.Duration(e.Duration * float64(time.Second)),
		PlaylistPos: pos,
	}
}

// Search runs a track search against the provider.
func (y *YTDLP) Search(ctx context.Context, query string) ([]core.Track, error) {
	out, err := y.invoke(ctx,
		"--dump-json", "--flat-playlist", "--no-warnings",
		fmt.Sprintf("ytsearch%d:%s", y.limit, query))
	if err != nil {
		return nil, err
	}

	entries, err := parseEntries(out)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, plumeerr.ErrNotFound
	}

	tracks := make([]core.Track, 0, len(entries))
	for i, e := range entries {
		tracks = append(tracks, e.track(i))
	}
	return tracks, nil
}

// SearchPlaylists runs a playlist search against the provider.
func (y *YTDLP) SearchPlaylists(ctx context.Context, query string) ([]PlaylistRef, error) {
	target := fmt.Sprintf(playlistSearchURL, url.QueryEscape(query))
	out, err := y.invoke(ctx,
		"--dump-json", "--flat-playlist", "--no-warnings",
		"--playlist-end", fmt.Sprint(y.limit),
		target)
	if err != nil {
		return nil, err
	}

	entries, err := parseEntries(out)
	if err != nil {
		return nil, err
	}

	var refs []PlaylistRef
	for _, e := range entries {
		if !strings.HasPrefix(e.ID, "PL") && !strings.HasPrefix(e.ID, "OL") && !strings.HasPrefix(e.ID, "RD") {
			continue
		}
		refs = append(refs, PlaylistRef{
			ID:         e.ID,
			Title:      e.Title,
			Uploader:   e.Uploader,
			TrackCount: e.PlaylistCount,
		})
	}
	if len(refs) == 0 {
		return nil, plumeerr.ErrNotFound
	}
	return refs, nil
}

// Resolve returns a direct audio stream URL for the track.
func (y *YTDLP) Resolve(ctx context.Context, trackID string) (string, error) {
	out, err := y.invoke(ctx, "-f", "bestaudio", "-g", "--no-warnings", watchURL+trackID)
	if err != nil {
		return "", err
	}
	stream := strings.TrimSpace(string(out))
	if stream == "" {
		return "", plumeerr.ErrNotFound
	}
	// -g may print one URL per requested format; take the first.
	if i := strings.IndexByte(stream, '\n'); i >= 0 {
		stream = stream[:i]
	}
	return stream, nil
}

// ExpandPlaylist fetches the full track listing of a remote playlist.
func (y *YTDLP) ExpandPlaylist(ctx context.Context, ref PlaylistRef) ([]core.Track, error) {
	out, err := y.invoke(ctx,
		"--dump-json", "--flat-playlist", "--no-warnings",
		playlistURL+ref.ID)
	if err != nil {
		return nil, err
	}

	entries, err := parseEntries(out)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, plumeerr.ErrNotFound
	}

	tracks := make([]core.Track, 0, len(entries))
	for i, e := range entries {
		tracks = append(tracks, e.track(i))
	}
	return tracks, nil
}

// parseEntries decodes yt-dlp's newline-delimited JSON output. Lines that
// fail to decode are skipped rather than failing the whole batch.
func parseEntries(out []byte) ([]searchEntry, error) {
	var entries []searchEntry
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var e searchEntry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		if e.ID == "" {
			continue
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning provider output: %w", err)
	}
	return entries, nil
}

// classifyError maps yt-dlp stderr output onto the app's error sentinels so
// the UI can tell a rate limit from a dead network.
func classifyError(stderr []byte, err error) error {
	msg := strings.ToLower(string(stderr))

	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "too many requests"):
		return fmt.Errorf("%w: %v", plumeerr.ErrRateLimited, err)
	case strings.Contains(msg, "private video"),
		strings.Contains(msg, "sign in to confirm"),
		strings.Contains(msg, "age"),
		strings.Contains(msg, "not available in your country"),
		strings.Contains(msg, "video unavailable"):
		return fmt.Errorf("%w: %v", plumeerr.ErrRestricted, err)
	case strings.Contains(msg, "unable to download"),
		strings.Contains(msg, "getaddrinfo"),
		strings.Contains(msg, "timed out"),
		strings.Contains(msg, "network"),
		strings.Contains(msg, "resolve"):
		return fmt.Errorf("%w: %v", plumeerr.ErrNetwork, err)
	case strings.Contains(msg, "did not match") || strings.Contains(msg, "no video results"):
		return fmt.Errorf("%w: %v", plumeerr.ErrNotFound, err)
	}
	if len(stderr) > 0 {
		return fmt.Errorf("provider: %s", firstStderrLine(stderr))
	}
	return fmt.Errorf("provider: %w", err)
}

func firstStderrLine(stderr []byte) string {
	for _, line := range bytes.Split(stderr, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			return string(line)
		}
	}
	return "unknown error"
}
