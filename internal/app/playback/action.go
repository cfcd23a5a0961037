package playback

import (
	"time"

	"github.com/AyabongaQwabi/espazza-player/internal/domain/playlist"
	"github.com/AyabongaQwabi/espazza-player/internal/domain/track"
)

// Action is the closed set of player state transitions. One struct per
// transition; the reducer switches exhaustively over the concrete types.
type Action interface {
	isAction()
}

// SetTrack replaces the current track without touching the queue.
type SetTrack struct {
	Track track.Track
}

// Play starts playback.
type Play struct{}

// Pause pauses playback.
type Pause struct{}

// TogglePlay flips the playing flag.
type TogglePlay struct{}

// SetVolume sets the volume. Volume 0 also sets Muted as a side channel;
// callers that need independent mute must not use 0 to mean "unmuted at zero".
type SetVolume struct {
	Volume float64
}

// ToggleMute flips Muted without altering Volume.
type ToggleMute struct{}

// SetCurrentTime mirrors the playback position reported by the device.
type SetCurrentTime struct {
	Time time.Duration
}

// SetDuration mirrors the track duration reported by the device.
type SetDuration struct {
	Duration time.Duration
}

// NextTrack advances to the next queue entry.
type NextTrack struct{}

// PrevTrack steps back one queue entry, or restarts the current track
// when more than the scrubback threshold has elapsed.
type PrevTrack struct{}

// ToggleRepeat cycles off -> all -> one -> off.
type ToggleRepeat struct{}

// ToggleShuffle shuffles the queue around the current track, or restores
// playlist order when disabling.
type ToggleShuffle struct{}

// SetQueue replaces the queue with an ad-hoc track list.
type SetQueue struct {
	Tracks []track.Track
}

// AddToQueue appends a track to the queue.
type AddToQueue struct {
	Track track.Track
}

// RemoveFromQueue removes a track from the queue by ID.
type RemoveFromQueue struct {
	TrackID string
}

// ClearQueue resets queue, current track and playlist provenance together.
type ClearQueue struct{}

// SetPlaylist starts playing a playlist: sets provenance and replaces the
// queue with the playlist's tracks.
type SetPlaylist struct {
	Playlist playlist.Playlist
}

// SetPlaylists replaces the in-memory playlist library mirror.
type SetPlaylists struct {
	Playlists []playlist.Playlist
}

// AddPlaylist mirrors a confirmed playlist creation.
type AddPlaylist struct {
	Playlist playlist.Playlist
}

// UpdatePlaylist mirrors a confirmed metadata update.
type UpdatePlaylist struct {
	Playlist playlist.Playlist
}

// RemovePlaylist mirrors a confirmed playlist deletion.
type RemovePlaylist struct {
	PlaylistID string
}

// AddToPlaylist mirrors a confirmed track addition.
type AddToPlaylist struct {
	PlaylistID string
	Track      track.Track
}

// RemoveFromPlaylist mirrors a confirmed track removal.
type RemoveFromPlaylist struct {
	PlaylistID string
	TrackID    string
}

// SetUserPlaylists replaces the saved-playlist ID list.
type SetUserPlaylists struct {
	IDs []string
}

// SetLoadingPlaylists flags an in-flight library load.
type SetLoadingPlaylists struct {
	Loading bool
}

func (SetTrack) isAction()            {}
func (Play) isAction()                {}
func (Pause) isAction()               {}
func (TogglePlay) isAction()          {}
func (SetVolume) isAction()           {}
func (ToggleMute) isAction()          {}
func (SetCurrentTime) isAction()      {}
func (SetDuration) isAction()         {}
func (NextTrack) isAction()           {}
func (PrevTrack) isAction()           {}
func (ToggleRepeat) isAction()        {}
func (ToggleShuffle) isAction()       {}
func (SetQueue) isAction()            {}
func (AddToQueue) isAction()          {}
func (RemoveFromQueue) isAction()     {}
func (ClearQueue) isAction()          {}
func (SetPlaylist) isAction()         {}
func (SetPlaylists) isAction()        {}
func (AddPlaylist) isAction()         {}
func (UpdatePlaylist) isAction()      {}
func (RemovePlaylist) isAction()      {}
func (AddToPlaylist) isAction()       {}
func (RemoveFromPlaylist) isAction()  {}
func (SetUserPlaylists) isAction()    {}
func (SetLoadingPlaylists) isAction() {}
