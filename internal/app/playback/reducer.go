package playback

import (
	"math/rand"
	"time"

	"github.com/AyabongaQwabi/espazza-player/internal/domain/playlist"
	"github.com/AyabongaQwabi/espazza-player/internal/domain/track"
)

// prevRestartThreshold is the scrubback protection window: pressing
// "previous" after this much playback restarts the track instead of
// moving back in the queue.
const prevRestartThreshold = 3 * time.Second

// Reducer is the pure transition function mapping (state, action) to a
// new state. The only randomness is the shuffle source, which is
// injectable so tests can seed it.
type Reducer struct {
	rand *rand.Rand
}

// NewReducer creates a reducer. A nil source seeds from the clock.
func NewReducer(src rand.Source) *Reducer {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Reducer{rand: rand.New(src)}
}

// Reduce computes the next state. The input state is never mutated;
// slices are copied before modification.
func (r *Reducer) Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetTrack:
		t := a.Track
		s.CurrentTrack = &t
		s.IsPlaying = true
		s.CurrentTime = 0
		return s

	case Play:
		s.IsPlaying = true
		return s

	case Pause:
		s.IsPlaying = false
		return s

	case TogglePlay:
		s.IsPlaying = !s.IsPlaying
		return s

	case SetVolume:
		s.Volume = a.Volume
		s.Muted = a.Volume == 0
		return s

	case ToggleMute:
		s.Muted = !s.Muted
		return s

	case SetCurrentTime:
		s.CurrentTime = a.Time
		return s

	case SetDuration:
		s.Duration = a.Duration
		return s

	case NextTrack:
		return r.nextTrack(s)

	case PrevTrack:
		return r.prevTrack(s)

	case ToggleRepeat:
		switch s.RepeatMode {
		case RepeatOff:
			s.RepeatMode = RepeatAll
		case RepeatAll:
			s.RepeatMode = RepeatOne
		default:
			s.RepeatMode = RepeatOff
		}
		return s

	case ToggleShuffle:
		return r.toggleShuffle(s)

	case SetQueue:
		return setQueue(s, a.Tracks)

	case AddToQueue:
		s.Queue = append(cloneTracks(s.Queue), a.Track)
		return s

	case RemoveFromQueue:
		return removeFromQueue(s, a.TrackID)

	case ClearQueue:
		s.Queue = nil
		s.CurrentTrack = nil
		s.CurrentPlaylist = nil
		s.IsPlaying = false
		s.CurrentTime = 0
		return s

	case SetPlaylist:
		p := a.Playlist
		s.CurrentPlaylist = &p
		return setQueue(s, p.Tracks)

	case SetPlaylists:
		s.Playlists = clonePlaylists(a.Playlists)
		return s

	case AddPlaylist:
		s.Playlists = append(clonePlaylists(s.Playlists), a.Playlist)
		return s

	case UpdatePlaylist:
		return updatePlaylist(s, a.Playlist)

	case RemovePlaylist:
		return removePlaylist(s, a.PlaylistID)

	case AddToPlaylist:
		return addToPlaylist(s, a.PlaylistID, a.Track)

	case RemoveFromPlaylist:
		return removeFromPlaylist(s, a.PlaylistID, a.TrackID)

	case SetUserPlaylists:
		s.UserPlaylists = append([]string(nil), a.IDs...)
		return s

	case SetLoadingPlaylists:
		s.LoadingPlaylists = a.Loading
		return s
	}
	return s
}

func (r *Reducer) nextTrack(s State) State {
	if len(s.Queue) == 0 || s.CurrentTrack == nil {
		return s
	}

	next := track.IndexByID(s.Queue, s.CurrentTrack.ID) + 1
	if next >= len(s.Queue) {
		if s.RepeatMode != RepeatAll {
			// End of queue without repeat: stop, keep the track loaded.
			s.IsPlaying = false
			s.CurrentTime = 0
			return s
		}
		next = 0
	}

	t := s.Queue[next]
	s.CurrentTrack = &t
	s.IsPlaying = true
	s.CurrentTime = 0
	return s
}

func (r *Reducer) prevTrack(s State) State {
	if s.CurrentTime > prevRestartThreshold {
		// Scrubback protection: restart the current track.
		s.CurrentTime = 0
		return s
	}

	if len(s.Queue) == 0 || s.CurrentTrack == nil {
		return s
	}

	prev := track.IndexByID(s.Queue, s.CurrentTrack.ID) - 1
	if prev < 0 {
		if s.RepeatMode == RepeatAll {
			prev = len(s.Queue) - 1
		} else {
			// Unlike NextTrack, stepping back from the first track
			// replays it rather than stopping.
			prev = 0
		}
	}

	t := s.Queue[prev]
	s.CurrentTrack = &t
	s.IsPlaying = true
	s.CurrentTime = 0
	return s
}

func (r *Reducer) toggleShuffle(s State) State {
	if !s.Shuffle {
		s.Shuffle = true
		s.Queue = r.shuffleAroundCurrent(s.Queue, s.CurrentTrack)
		return s
	}

	s.Shuffle = false
	if s.CurrentPlaylist != nil {
		s.Queue = restoreOrder(s.CurrentPlaylist.Tracks, s.CurrentTrack)
	}
	return s
}

// shuffleAroundCurrent applies a Fisher-Yates shuffle to the queue with
// the current track pinned at the front. Reorders only, never duplicates.
func (r *Reducer) shuffleAroundCurrent(queue []track.Track, current *track.Track) []track.Track {
	rest := make([]track.Track, 0, len(queue))
	for _, t := range queue {
		if current != nil && t.ID == current.ID {
			continue
		}
		rest = append(rest, t)
	}

	for i := len(rest) - 1; i > 0; i-- {
		j := r.rand.Intn(i + 1)
		rest[i], rest[j] = rest[j], rest[i]
	}

	if current == nil {
		return rest
	}
	return append([]track.Track{*current}, rest...)
}

// restoreOrder rebuilds the queue in source order with the current track
// moved to the front; the relative order of all other tracks is preserved.
func restoreOrder(source []track.Track, current *track.Track) []track.Track {
	if current == nil {
		return cloneTracks(source)
	}

	out := make([]track.Track, 0, len(source)+1)
	out = append(out, *current)
	for _, t := range source {
		if t.ID != current.ID {
			out = append(out, t)
		}
	}
	return out
}

func setQueue(s State, tracks []track.Track) State {
	s.Queue = cloneTracks(tracks)
	if len(tracks) > 0 {
		t := tracks[0]
		s.CurrentTrack = &t
		s.IsPlaying = true
	} else {
		s.CurrentTrack = nil
		s.IsPlaying = false
	}
	s.CurrentTime = 0
	return s
}

func removeFromQueue(s State, trackID string) State {
	removedIdx := track.IndexByID(s.Queue, trackID)
	if removedIdx < 0 {
		return s
	}

	queue := make([]track.Track, 0, len(s.Queue)-1)
	for _, t := range s.Queue {
		if t.ID != trackID {
			queue = append(queue, t)
		}
	}
	s.Queue = queue

	if s.CurrentTrack == nil || s.CurrentTrack.ID != trackID {
		return s
	}

	// The playing track was removed: advance to the track that shifted
	// into its old index, falling back to the head of the queue.
	var next *track.Track
	switch {
	case removedIdx < len(queue):
		t := queue[removedIdx]
		next = &t
	case len(queue) > 0:
		t := queue[0]
		next = &t
	}

	s.CurrentTrack = next
	s.IsPlaying = next != nil
	s.CurrentTime = 0
	return s
}

func updatePlaylist(s State, p playlist.Playlist) State {
	playlists := clonePlaylists(s.Playlists)
	for i := range playlists {
		if playlists[i].ID == p.ID {
			playlists[i] = mergeMetadata(playlists[i], p)
		}
	}
	s.Playlists = playlists

	// Metadata-only propagation: membership stays as confirmed by the
	// add/remove actions, and the queue keeps its current order, which
	// may be shuffled.
	if s.CurrentPlaylist != nil && s.CurrentPlaylist.ID == p.ID {
		cp := mergeMetadata(*s.CurrentPlaylist, p)
		s.CurrentPlaylist = &cp
	}
	return s
}

// mergeMetadata applies the updated metadata onto an existing playlist,
// keeping its tracks, owner and creation time.
func mergeMetadata(existing, updated playlist.Playlist) playlist.Playlist {
	existing.Name = updated.Name
	existing.Description = updated.Description
	existing.CoverImageURL = updated.CoverImageURL
	existing.IsPublic = updated.IsPublic
	existing.UpdatedAt = updated.UpdatedAt
	return existing
}

func removePlaylist(s State, playlistID string) State {
	playlists := make([]playlist.Playlist, 0, len(s.Playlists))
	for _, p := range s.Playlists {
		if p.ID != playlistID {
			playlists = append(playlists, p)
		}
	}
	s.Playlists = playlists
	s.UserPlaylists = removeString(s.UserPlaylists, playlistID)

	// Deleting the playing playlist drops provenance only; the queue
	// keeps playing as an ad-hoc list.
	if s.CurrentPlaylist != nil && s.CurrentPlaylist.ID == playlistID {
		s.CurrentPlaylist = nil
	}
	return s
}

func addToPlaylist(s State, playlistID string, t track.Track) State {
	playlists := clonePlaylists(s.Playlists)
	for i := range playlists {
		if playlists[i].ID == playlistID {
			playlists[i].Tracks = append(cloneTracks(playlists[i].Tracks), t)
		}
	}
	s.Playlists = playlists

	if s.CurrentPlaylist != nil && s.CurrentPlaylist.ID == playlistID {
		cp := *s.CurrentPlaylist
		cp.Tracks = append(cloneTracks(cp.Tracks), t)
		s.CurrentPlaylist = &cp
		s.Queue = append(cloneTracks(s.Queue), t)
	}
	return s
}

func removeFromPlaylist(s State, playlistID, trackID string) State {
	playlists := clonePlaylists(s.Playlists)
	for i := range playlists {
		if playlists[i].ID == playlistID {
			playlists[i].Tracks = removeTrack(playlists[i].Tracks, trackID)
		}
	}
	s.Playlists = playlists

	if s.CurrentPlaylist != nil && s.CurrentPlaylist.ID == playlistID {
		cp := *s.CurrentPlaylist
		cp.Tracks = removeTrack(cp.Tracks, trackID)
		s.CurrentPlaylist = &cp
		// Same adjustment rules as RemoveFromQueue, including the
		// auto-advance when the playing track is removed.
		s = removeFromQueue(s, trackID)
	}
	return s
}

func removeTrack(tracks []track.Track, trackID string) []track.Track {
	out := make([]track.Track, 0, len(tracks))
	for _, t := range tracks {
		if t.ID != trackID {
			out = append(out, t)
		}
	}
	return out
}

func removeString(values []string, v string) []string {
	out := make([]string, 0, len(values))
	for _, s := range values {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

func cloneTracks(tracks []track.Track) []track.Track {
	out := make([]track.Track, len(tracks))
	copy(out, tracks)
	return out
}

func clonePlaylists(playlists []playlist.Playlist) []playlist.Playlist {
	out := make([]playlist.Playlist, len(playlists))
	copy(out, playlists)
	return out
}
