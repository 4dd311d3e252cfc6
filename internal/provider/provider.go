// Package provider resolves search queries and track locators against the
// streaming backend. The only implementation shells out to yt-dlp, but the
// rest of the app talks to the Client interface so tests can substitute
// canned results.
package provider

import (
	"context"

	"github.com/plume-player/plume/internal/core"
)

// PlaylistRef identifies a remote playlist found via search. It carries just
// enough to display and expand it; the tracks are fetched lazily.
type PlaylistRef struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Uploader   string `json:"uploader"`
	TrackCount int    `json:"track_count"`
}

// Client is the interface to the streaming provider.
type Client interface {
	// Search returns tracks matching query, best match first.
	Search(ctx context.Context, query string) ([]core.Track, error)

	// SearchPlaylists returns remote playlists matching query.
	SearchPlaylists(ctx context.Context, query string) ([]PlaylistRef, error)

	// Resolve turns a track ID into a playable stream locator.
	Resolve(ctx context.Context, trackID string) (string, error)

	// ExpandPlaylist fetches the track listing of a remote playlist.
	ExpandPlaylist(ctx context.Context, ref PlaylistRef) ([]core.Track, error)
}
