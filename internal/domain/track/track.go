// Package track provides the Track domain entity.
package track

// Track represents a playable track on the platform.
// The URL points at the audio master in object storage and is treated
// as an opaque string by the player.
type Track struct {
	ID            string // Track ID
	Title         string // Track title
	Artist        string // Artist display name
	ArtistID      string // Artist ID
	CoverImageURL string // Cover art URL
	URL           string // Audio URL
	ReleaseID     string // Release the track belongs to (optional)
	Plays         int    // Play count at load time
}

// SameAs reports whether two tracks refer to the same entity.
// Identity is by ID; metadata differences are ignored.
func (t Track) SameAs(other Track) bool {
	return t.ID == other.ID
}

// IndexByID returns the index of the track with the given ID, or -1.
func IndexByID(tracks []Track, id string) int {
	for i, t := range tracks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
