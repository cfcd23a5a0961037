package rest

import (
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"

	"github.com/AyabongaQwabi/espazza-player/internal/app/library"
	"github.com/AyabongaQwabi/espazza-player/internal/domain/playlist"
	"github.com/AyabongaQwabi/espazza-player/internal/domain/track"
)

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	if err := s.library.LoadPlaylists(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load playlists")
		return
	}

	state := s.store.State()
	playlists := make([]playlistDTO, len(state.Playlists))
	for i, p := range state.Playlists {
		playlists[i] = toPlaylistDTO(p)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"playlists":      playlists,
		"user_playlists": state.UserPlaylists,
	})
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name          string     `json:"name"`
		Description   string     `json:"description"`
		CoverImageURL string     `json:"cover_image_url"`
		IsPublic      bool       `json:"is_public"`
		Tracks        []trackDTO `json:"tracks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	tracks := make([]track.Track, len(body.Tracks))
	for i, d := range body.Tracks {
		tracks[i] = fromTrackDTO(d)
	}

	p, err := s.library.CreatePlaylist(r.Context(), body.Name, body.Description, body.CoverImageURL, body.IsPublic, tracks)
	if err != nil {
		writeLibraryError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPlaylistDTO(p))
}

func (s *Server) handleUpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	playlistID := chi.URLParam(r, "id")

	var body struct {
		Name          string `json:"name"`
		Description   string `json:"description"`
		CoverImageURL string `json:"cover_image_url"`
		IsPublic      bool   `json:"is_public"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := s.library.UpdateMetadata(r.Context(), playlist.Playlist{
		ID:            playlistID,
		Name:          body.Name,
		Description:   body.Description,
		CoverImageURL: body.CoverImageURL,
		IsPublic:      body.IsPublic,
	})
	if err != nil {
		writeLibraryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	if err := s.library.DeletePlaylist(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeLibraryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlayPlaylist(w http.ResponseWriter, r *http.Request) {
	if err := s.library.PlayPlaylist(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeLibraryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStateDTO(s.store.State()))
}

func (s *Server) handleAddTrackToPlaylist(w http.ResponseWriter, r *http.Request) {
	var body trackDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.ID == "" {
		writeError(w, http.StatusBadRequest, "track id is required")
		return
	}

	if err := s.library.AddTrack(r.Context(), chi.URLParam(r, "id"), fromTrackDTO(body)); err != nil {
		writeLibraryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveTrackFromPlaylist(w http.ResponseWriter, r *http.Request) {
	playlistID := chi.URLParam(r, "id")
	trackID := chi.URLParam(r, "trackId")

	if err := s.library.RemoveTrack(r.Context(), playlistID, trackID); err != nil {
		writeLibraryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSavePlaylist(w http.ResponseWriter, r *http.Request) {
	if err := s.library.SavePlaylist(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeLibraryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnsavePlaylist(w http.ResponseWriter, r *http.Request) {
	if err := s.library.UnsavePlaylist(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeLibraryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeLibraryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, library.ErrAuthRequired):
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, library.ErrNotFound):
		writeError(w, http.StatusNotFound, "playlist not found")
	default:
		writeError(w, http.StatusInternalServerError, "operation failed")
	}
}
