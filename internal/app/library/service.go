package library

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/AyabongaQwabi/espazza-player/internal/app/notify"
	"github.com/AyabongaQwabi/espazza-player/internal/app/playback"
	"github.com/AyabongaQwabi/espazza-player/internal/domain/playlist"
	"github.com/AyabongaQwabi/espazza-player/internal/domain/track"
)

// Service performs playlist mutations against the repository and
// mirrors confirmed results into the playback store. On failure the
// store is left untouched and the user is notified; requests are not
// sequenced, so rapid overlapping mutations can still interleave at
// the repository.
type Service struct {
	store    *playback.Store
	repo     Repository
	notifier notify.Notifier
	newID    func() string
	now      func() time.Time
}

// NewService creates a library service.
func NewService(store *playback.Store, repo Repository, notifier notify.Notifier) *Service {
	return &Service{
		store:    store,
		repo:     repo,
		notifier: notifier,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// LoadPlaylists fetches the playlists visible to the session (or the
// public set for anonymous callers) and mirrors them into the store.
func (s *Service) LoadPlaylists(ctx context.Context) error {
	s.store.Dispatch(playback.SetLoadingPlaylists{Loading: true})
	defer s.store.Dispatch(playback.SetLoadingPlaylists{Loading: false})

	var userID string
	if sess, ok := SessionFromContext(ctx); ok {
		userID = sess.UserID
	}

	playlists, err := s.repo.ListAccessible(ctx, userID)
	if err != nil {
		s.notifyError(ctx, "Failed to load playlists", err)
		return errors.Wrap(err, "failed to load playlists")
	}
	s.store.Dispatch(playback.SetPlaylists{Playlists: playlists})

	if userID == "" {
		return nil
	}

	saved, err := s.repo.ListSavedIDs(ctx, userID)
	if err != nil {
		s.notifyError(ctx, "Failed to load saved playlists", err)
		return errors.Wrap(err, "failed to load saved playlists")
	}
	s.store.Dispatch(playback.SetUserPlaylists{IDs: saved})
	return nil
}

// CreatePlaylist persists a new playlist with the given initial tracks
// and mirrors it into the store.
func (s *Service) CreatePlaylist(ctx context.Context, name, description, coverImageURL string, isPublic bool, tracks []track.Track) (playlist.Playlist, error) {
	sess, ok := SessionFromContext(ctx)
	if !ok {
		s.notifyAuthRequired(ctx)
		return playlist.Playlist{}, ErrAuthRequired
	}

	now := s.now()
	p := playlist.Playlist{
		ID:            s.newID(),
		Name:          name,
		Description:   description,
		CoverImageURL: coverImageURL,
		Tracks:        tracks,
		UserID:        sess.UserID,
		IsPublic:      isPublic,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.notifyError(ctx, "Failed to create playlist", err)
		return playlist.Playlist{}, errors.Wrap(err, "failed to create playlist")
	}

	s.store.Dispatch(playback.AddPlaylist{Playlist: p})
	s.notifier.Notify(ctx, notify.Notification{
		Title:       "Playlist created",
		Description: name,
		Variant:     notify.VariantSuccess,
	})
	return p, nil
}

// AddTrack adds a track to a playlist. Adding a track that is already
// present is not an error: the caller gets nil and an informational
// notification, and no state changes.
func (s *Service) AddTrack(ctx context.Context, playlistID string, t track.Track) error {
	sess, ok := SessionFromContext(ctx)
	if !ok {
		s.notifyAuthRequired(ctx)
		return ErrAuthRequired
	}

	if _, err := s.repo.AddTrack(ctx, sess.UserID, playlistID, t); err != nil {
		if errors.Is(err, ErrDuplicateTrack) {
			s.notifier.Notify(ctx, notify.Notification{
				Title:       "Already in playlist",
				Description: t.Title,
				Variant:     notify.VariantInfo,
			})
			return nil
		}
		s.notifyError(ctx, "Failed to add track", err)
		return errors.Wrap(err, "failed to add track")
	}

	s.store.Dispatch(playback.AddToPlaylist{PlaylistID: playlistID, Track: t})
	s.notifier.Notify(ctx, notify.Notification{
		Title:       "Added to playlist",
		Description: t.Title,
		Variant:     notify.VariantSuccess,
	})
	return nil
}

// RemoveTrack removes a track from a playlist.
func (s *Service) RemoveTrack(ctx context.Context, playlistID, trackID string) error {
	sess, ok := SessionFromContext(ctx)
	if !ok {
		s.notifyAuthRequired(ctx)
		return ErrAuthRequired
	}

	if err := s.repo.RemoveTrack(ctx, sess.UserID, playlistID, trackID); err != nil {
		s.notifyError(ctx, "Failed to remove track", err)
		return errors.Wrap(err, "failed to remove track")
	}

	s.store.Dispatch(playback.RemoveFromPlaylist{PlaylistID: playlistID, TrackID: trackID})
	return nil
}

// UpdateMetadata updates a playlist's name, description, cover image
// and visibility.
func (s *Service) UpdateMetadata(ctx context.Context, p playlist.Playlist) error {
	sess, ok := SessionFromContext(ctx)
	if !ok {
		s.notifyAuthRequired(ctx)
		return ErrAuthRequired
	}

	p.UpdatedAt = s.now()
	if err := s.repo.UpdateMetadata(ctx, sess.UserID, p); err != nil {
		s.notifyError(ctx, "Failed to update playlist", err)
		return errors.Wrap(err, "failed to update playlist")
	}

	s.store.Dispatch(playback.UpdatePlaylist{Playlist: p})
	return nil
}

// DeletePlaylist removes a playlist and its membership rows.
func (s *Service) DeletePlaylist(ctx context.Context, playlistID string) error {
	sess, ok := SessionFromContext(ctx)
	if !ok {
		s.notifyAuthRequired(ctx)
		return ErrAuthRequired
	}

	if err := s.repo.Delete(ctx, sess.UserID, playlistID); err != nil {
		s.notifyError(ctx, "Failed to delete playlist", err)
		return errors.Wrap(err, "failed to delete playlist")
	}

	s.store.Dispatch(playback.RemovePlaylist{PlaylistID: playlistID})
	s.notifier.Notify(ctx, notify.Notification{
		Title:   "Playlist deleted",
		Variant: notify.VariantSuccess,
	})
	return nil
}

// SavePlaylist adds a playlist to the user's favorites.
func (s *Service) SavePlaylist(ctx context.Context, playlistID string) error {
	sess, ok := SessionFromContext(ctx)
	if !ok {
		s.notifyAuthRequired(ctx)
		return ErrAuthRequired
	}

	if err := s.repo.SavePlaylist(ctx, sess.UserID, playlistID); err != nil {
		s.notifyError(ctx, "Failed to save playlist", err)
		return errors.Wrap(err, "failed to save playlist")
	}

	// Storage holds one row per (user, playlist); the mirror must too.
	ids := s.store.State().UserPlaylists
	for _, id := range ids {
		if id == playlistID {
			return nil
		}
	}
	s.store.Dispatch(playback.SetUserPlaylists{IDs: append(append([]string(nil), ids...), playlistID)})
	return nil
}

// UnsavePlaylist removes a playlist from the user's favorites.
func (s *Service) UnsavePlaylist(ctx context.Context, playlistID string) error {
	sess, ok := SessionFromContext(ctx)
	if !ok {
		s.notifyAuthRequired(ctx)
		return ErrAuthRequired
	}

	if err := s.repo.UnsavePlaylist(ctx, sess.UserID, playlistID); err != nil {
		s.notifyError(ctx, "Failed to unsave playlist", err)
		return errors.Wrap(err, "failed to unsave playlist")
	}

	ids := make([]string, 0, len(s.store.State().UserPlaylists))
	for _, id := range s.store.State().UserPlaylists {
		if id != playlistID {
			ids = append(ids, id)
		}
	}
	s.store.Dispatch(playback.SetUserPlaylists{IDs: ids})
	return nil
}

// PlayPlaylist starts playback of one of the loaded playlists.
func (s *Service) PlayPlaylist(ctx context.Context, playlistID string) error {
	for _, p := range s.store.State().Playlists {
		if p.ID == playlistID {
			s.store.Dispatch(playback.SetPlaylist{Playlist: p})
			return nil
		}
	}
	return ErrNotFound
}

func (s *Service) notifyAuthRequired(ctx context.Context) {
	s.notifier.Notify(ctx, notify.Notification{
		Title:       "Authentication required",
		Description: "Sign in to manage playlists",
		Variant:     notify.VariantDestructive,
	})
}

func (s *Service) notifyError(ctx context.Context, title string, err error) {
	zlog.Error().Err(err).Msgf("library: %s", title)
	s.notifier.Notify(ctx, notify.Notification{
		Title:       title,
		Description: err.Error(),
		Variant:     notify.VariantDestructive,
	})
}
