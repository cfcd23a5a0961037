// Package playback provides the player state machine: a reducer-driven
// store holding the canonical playback state for one engine instance.
package playback

import (
	"time"

	"github.com/AyabongaQwabi/espazza-player/internal/domain/playlist"
	"github.com/AyabongaQwabi/espazza-player/internal/domain/track"
)

// RepeatMode represents the repeat behavior.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota // No repeat
	RepeatAll                   // Wrap around at queue boundaries
	RepeatOne                   // Replay the current track
)

// String returns the string representation of the repeat mode.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "off"
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "unknown"
	}
}

// State is the canonical player state. It is treated as an immutable
// snapshot: the reducer copies slices before modifying them, so a State
// handed to a reader or listener is never mutated afterwards.
type State struct {
	// Transport
	CurrentTrack *track.Track  // Track loaded into the audio device (nil when idle)
	Queue        []track.Track // Ordered playback sequence
	IsPlaying    bool
	Volume       float64 // 0.0 .. 1.0
	Muted        bool
	CurrentTime  time.Duration // Mirrored from the device
	Duration     time.Duration // Mirrored from the device
	RepeatMode   RepeatMode
	Shuffle      bool

	// Queue provenance. Set when the queue originated from a playlist;
	// used to restore order when shuffle is disabled.
	CurrentPlaylist *playlist.Playlist

	// Playlist library mirror
	Playlists        []playlist.Playlist
	UserPlaylists    []string // Playlist IDs saved by the current user
	LoadingPlaylists bool
}

// NewState returns the initial player state.
func NewState() State {
	return State{
		Volume: 1.0,
	}
}

// CurrentIndex returns the index of the current track in the queue, or -1.
func (s State) CurrentIndex() int {
	if s.CurrentTrack == nil {
		return -1
	}
	return track.IndexByID(s.Queue, s.CurrentTrack.ID)
}

// EffectiveVolume returns the volume the audio device should use.
func (s State) EffectiveVolume() float64 {
	if s.Muted {
		return 0
	}
	return s.Volume
}
