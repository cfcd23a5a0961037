package library

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/AyabongaQwabi/espazza-player/internal/domain/playlist"
	"github.com/AyabongaQwabi/espazza-player/internal/domain/track"
)

var (
	// ErrAuthRequired is returned by mutating operations without a
	// resolved session.
	ErrAuthRequired = errors.New("authentication required")

	// ErrDuplicateTrack reports an add of a track already in the
	// playlist.
	ErrDuplicateTrack = errors.New("track already in playlist")

	// ErrNotFound reports a playlist that does not exist or is not
	// visible to the caller.
	ErrNotFound = errors.New("playlist not found")
)

// Repository is the storage surface the library depends on. userID is
// empty for anonymous reads.
type Repository interface {
	// ListAccessible returns playlists owned by the user plus public
	// playlists, tracks ordered by position. Anonymous callers get
	// public playlists only.
	ListAccessible(ctx context.Context, userID string) ([]playlist.Playlist, error)

	// ListSavedIDs returns the ids of playlists the user has saved.
	ListSavedIDs(ctx context.Context, userID string) ([]string, error)

	// Create inserts the playlist row and its membership rows.
	Create(ctx context.Context, p playlist.Playlist) error

	// UpdateMetadata updates name, description, cover image and
	// visibility, scoped by owner.
	UpdateMetadata(ctx context.Context, userID string, p playlist.Playlist) error

	// Delete removes the playlist and its membership rows, scoped by
	// owner.
	Delete(ctx context.Context, userID, playlistID string) error

	// AddTrack appends a track at the next position. Returns
	// ErrDuplicateTrack if the membership already exists.
	AddTrack(ctx context.Context, userID, playlistID string, t track.Track) (int, error)

	// RemoveTrack deletes a membership row and compacts positions.
	RemoveTrack(ctx context.Context, userID, playlistID, trackID string) error

	// SavePlaylist and UnsavePlaylist manage the user's favorites.
	SavePlaylist(ctx context.Context, userID, playlistID string) error
	UnsavePlaylist(ctx context.Context, userID, playlistID string) error
}
