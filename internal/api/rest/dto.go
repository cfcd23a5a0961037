package rest

import (
	"time"

	"github.com/AyabongaQwabi/espazza-player/internal/app/playback"
	"github.com/AyabongaQwabi/espazza-player/internal/domain/playlist"
	"github.com/AyabongaQwabi/espazza-player/internal/domain/track"
)

type trackDTO struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	ArtistID      string `json:"artist_id"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
	URL           string `json:"url"`
	ReleaseID     string `json:"release_id,omitempty"`
	Plays         int    `json:"plays,omitempty"`
}

type playlistDTO struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	Tracks        []trackDTO `json:"tracks"`
	UserID        string     `json:"user_id"`
	IsPublic      bool       `json:"is_public"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type stateDTO struct {
	CurrentTrack     *trackDTO     `json:"current_track"`
	Queue            []trackDTO    `json:"queue"`
	IsPlaying        bool          `json:"is_playing"`
	Volume           float64       `json:"volume"`
	Muted            bool          `json:"muted"`
	CurrentTime      float64       `json:"current_time"`
	Duration         float64       `json:"duration"`
	RepeatMode       string        `json:"repeat_mode"`
	Shuffle          bool          `json:"shuffle"`
	CurrentPlaylist  *playlistDTO  `json:"current_playlist"`
	Playlists        []playlistDTO `json:"playlists"`
	UserPlaylists    []string      `json:"user_playlists"`
	LoadingPlaylists bool          `json:"loading_playlists"`
}

func toTrackDTO(t track.Track) trackDTO {
	return trackDTO{
		ID:            t.ID,
		Title:         t.Title,
		Artist:        t.Artist,
		ArtistID:      t.ArtistID,
		CoverImageURL: t.CoverImageURL,
		URL:           t.URL,
		ReleaseID:     t.ReleaseID,
		Plays:         t.Plays,
	}
}

func fromTrackDTO(d trackDTO) track.Track {
	return track.Track{
		ID:            d.ID,
		Title:         d.Title,
		Artist:        d.Artist,
		ArtistID:      d.ArtistID,
		CoverImageURL: d.CoverImageURL,
		URL:           d.URL,
		ReleaseID:     d.ReleaseID,
		Plays:         d.Plays,
	}
}

func toTrackDTOs(tracks []track.Track) []trackDTO {
	out := make([]trackDTO, len(tracks))
	for i, t := range tracks {
		out[i] = toTrackDTO(t)
	}
	return out
}

func toPlaylistDTO(p playlist.Playlist) playlistDTO {
	return playlistDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		CoverImageURL: p.CoverImageURL,
		Tracks:        toTrackDTOs(p.Tracks),
		UserID:        p.UserID,
		IsPublic:      p.IsPublic,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toStateDTO(s playback.State) stateDTO {
	dto := stateDTO{
		Queue:            toTrackDTOs(s.Queue),
		IsPlaying:        s.IsPlaying,
		Volume:           s.Volume,
		Muted:            s.Muted,
		CurrentTime:      s.CurrentTime.Seconds(),
		Duration:         s.Duration.Seconds(),
		RepeatMode:       s.RepeatMode.String(),
		Shuffle:          s.Shuffle,
		UserPlaylists:    s.UserPlaylists,
		LoadingPlaylists: s.LoadingPlaylists,
	}
	if s.CurrentTrack != nil {
		t := toTrackDTO(*s.CurrentTrack)
		dto.CurrentTrack = &t
	}
	if s.CurrentPlaylist != nil {
		p := toPlaylistDTO(*s.CurrentPlaylist)
		dto.CurrentPlaylist = &p
	}
	dto.Playlists = make([]playlistDTO, len(s.Playlists))
	for i, p := range s.Playlists {
		dto.Playlists[i] = toPlaylistDTO(p)
	}
	return dto
}
