// Package playlist provides the Playlist domain entity.
package playlist

import (
	"time"

	"github.com/AyabongaQwabi/espazza-player/internal/domain/track"
)

// Playlist represents a user-owned, ordered collection of tracks.
// The order of Tracks is the playback order.
type Playlist struct {
	ID            string        // Playlist ID
	Name          string        // Playlist name
	Description   string        // Playlist description (optional)
	CoverImageURL string        // Cover art URL (optional)
	Tracks        []track.Track // Tracks in playback order
	UserID        string        // Owner user ID
	IsPublic      bool          // Visible to other users
	CreatedAt     time.Time     // Creation time
	UpdatedAt     time.Time     // Last metadata/membership change
}

// TrackIDs returns all track IDs in playback order.
func (p *Playlist) TrackIDs() []string {
	ids := make([]string, len(p.Tracks))
	for i, t := range p.Tracks {
		ids[i] = t.ID
	}
	return ids
}

// ContainsTrack reports whether the playlist holds a track with the given ID.
func (p *Playlist) ContainsTrack(trackID string) bool {
	return track.IndexByID(p.Tracks, trackID) >= 0
}

// TotalPlays returns the summed play count of all tracks.
func (p *Playlist) TotalPlays() int {
	var total int
	for _, t := range p.Tracks {
		total += t.Plays
	}
	return total
}

// OwnedBy reports whether the playlist belongs to the given user.
func (p *Playlist) OwnedBy(userID string) bool {
	return userID != "" && p.UserID == userID
}
