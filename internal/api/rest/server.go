// Package rest exposes the player and playlist operations over HTTP.
package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/AyabongaQwabi/espazza-player/internal/app/binder"
	"github.com/AyabongaQwabi/espazza-player/internal/app/library"
	"github.com/AyabongaQwabi/espazza-player/internal/app/playback"
)

// Server wires the HTTP surface to the playback store, the binder and
// the library service.
type Server struct {
	store   *playback.Store
	binder  *binder.Binder
	library *library.Service
}

// NewServer creates a REST server.
func NewServer(store *playback.Store, b *binder.Binder, lib *library.Service) *Server {
	return &Server{store: store, binder: b, library: lib}
}

// Router builds the chi router for the server.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(sessionMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/player", func(r chi.Router) {
		r.Get("/", s.handleGetState)
		r.Post("/play", s.handlePlay)
		r.Post("/pause", s.handlePause)
		r.Post("/toggle", s.handleTogglePlay)
		r.Post("/next", s.handleNextTrack)
		r.Post("/previous", s.handlePrevTrack)
		r.Post("/seek", s.handleSeek)
		r.Post("/volume", s.handleSetVolume)
		r.Post("/mute", s.handleToggleMute)
		r.Post("/repeat", s.handleToggleRepeat)
		r.Post("/shuffle", s.handleToggleShuffle)
		r.Post("/track", s.handleSetTrack)
	})

	r.Route("/queue", func(r chi.Router) {
		r.Put("/", s.handleSetQueue)
		r.Post("/", s.handleAddToQueue)
		r.Delete("/", s.handleClearQueue)
		r.Delete("/{trackId}", s.handleRemoveFromQueue)
	})

	r.Route("/playlists", func(r chi.Router) {
		r.Get("/", s.handleListPlaylists)
		r.Post("/", s.handleCreatePlaylist)
		r.Patch("/{id}", s.handleUpdatePlaylist)
		r.Delete("/{id}", s.handleDeletePlaylist)
		r.Post("/{id}/play", s.handlePlayPlaylist)
		r.Post("/{id}/tracks", s.handleAddTrackToPlaylist)
		r.Delete("/{id}/tracks/{trackId}", s.handleRemoveTrackFromPlaylist)
		r.Put("/{id}/save", s.handleSavePlaylist)
		r.Delete("/{id}/save", s.handleUnsavePlaylist)
	})

	return r
}

// sessionMiddleware resolves the caller's session from the X-User-Id
// header set by the upstream auth proxy. Requests without the header
// proceed anonymously.
func sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID := r.Header.Get("X-User-Id"); userID != "" {
			ctx := library.ContextWithSession(r.Context(), library.Session{UserID: userID})
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "espazza-player",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
	})
}
