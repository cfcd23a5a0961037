package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AyabongaQwabi/espazza-player/internal/app/playback"
	"github.com/AyabongaQwabi/espazza-player/internal/domain/track"
)

func (s *Server) handleGetState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toStateDTO(s.store.State()))
}

func (s *Server) handlePlay(w http.ResponseWriter, _ *http.Request) {
	s.store.Dispatch(playback.Play{})
	writeJSON(w, http.StatusOK, toStateDTO(s.store.State()))
}

func (s *Server) handlePause(w http.ResponseWriter, _ *http.Request) {
	s.store.Dispatch(playback.Pause{})
	writeJSON(w, http.StatusOK, toStateDTO(s.store.State()))
}

func (s *Server) handleTogglePlay(w http.ResponseWriter, _ *http.Request) {
	s.store.Dispatch(playback.TogglePlay{})
	writeJSON(w, http.StatusOK, toStateDTO(s.store.State()))
}

func (s *Server) handleNextTrack(w http.ResponseWriter, _ *http.Request) {
	s.store.Dispatch(playback.NextTrack{})
	writeJSON(w, http.StatusOK, toStateDTO(s.store.State()))
}

func (s *Server) handlePrevTrack(w http.ResponseWriter, _ *http.Request) {
	s.store.Dispatch(playback.PrevTrack{})
	writeJSON(w, http.StatusOK, toStateDTO(s.store.State()))
}

func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Position float64 `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Position < 0 {
		writeError(w, http.StatusBadRequest, "position must not be negative")
		return
	}

	s.binder.Seek(time.Duration(body.Position * float64(time.Second)))
	writeJSON(w, http.StatusOK, toStateDTO(s.store.State()))
}

func (s *Server) handleSetVolume(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Volume float64 `json:"volume"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Volume < 0 || body.Volume > 1 {
		writeError(w, http.StatusBadRequest, "volume must be between 0 and 1")
		return
	}

	s.store.Dispatch(playback.SetVolume{Volume: body.Volume})
	writeJSON(w, http.StatusOK, toStateDTO(s.store.State()))
}

func (s *Server) handleToggleMute(w http.ResponseWriter, _ *http.Request) {
	s.store.Dispatch(playback.ToggleMute{})
	writeJSON(w, http.StatusOK, toStateDTO(s.store.State()))
}

func (s *Server) handleToggleRepeat(w http.ResponseWriter, _ *http.Request) {
	s.store.Dispatch(playback.ToggleRepeat{})
	writeJSON(w, http.StatusOK, toStateDTO(s.store.State()))
}

func (s *Server) handleToggleShuffle(w http.ResponseWriter, _ *http.Request) {
	s.store.Dispatch(playback.ToggleShuffle{})
	writeJSON(w, http.StatusOK, toStateDTO(s.store.State()))
}

func (s *Server) handleSetTrack(w http.ResponseWriter, r *http.Request) {
	var body trackDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.ID == "" || body.URL == "" {
		writeError(w, http.StatusBadRequest, "track id and url are required")
		return
	}

	s.store.Dispatch(playback.SetTrack{Track: fromTrackDTO(body)})
	writeJSON(w, http.StatusOK, toStateDTO(s.store.State()))
}

func (s *Server) handleSetQueue(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Tracks []trackDTO `json:"tracks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	tracks := make([]track.Track, len(body.Tracks))
	for i, d := range body.Tracks {
		tracks[i] = fromTrackDTO(d)
	}

	s.store.Dispatch(playback.SetQueue{Tracks: tracks})
	writeJSON(w, http.StatusOK, toStateDTO(s.store.State()))
}

func (s *Server) handleAddToQueue(w http.ResponseWriter, r *http.Request) {
	var body trackDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.ID == "" {
		writeError(w, http.StatusBadRequest, "track id is required")
		return
	}

	s.store.Dispatch(playback.AddToQueue{Track: fromTrackDTO(body)})
	writeJSON(w, http.StatusOK, toStateDTO(s.store.State()))
}

func (s *Server) handleRemoveFromQueue(w http.ResponseWriter, r *http.Request) {
	trackID := chi.URLParam(r, "trackId")
	if trackID == "" {
		writeError(w, http.StatusBadRequest, "missing track id")
		return
	}

	s.store.Dispatch(playback.RemoveFromQueue{TrackID: trackID})
	writeJSON(w, http.StatusOK, toStateDTO(s.store.State()))
}

func (s *Server) handleClearQueue(w http.ResponseWriter, _ *http.Request) {
	s.store.Dispatch(playback.ClearQueue{})
	writeJSON(w, http.StatusOK, toStateDTO(s.store.State()))
}
