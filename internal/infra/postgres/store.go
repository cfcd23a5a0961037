// Package postgres implements the library repository on a pgx pool.
package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	zlog "github.com/rs/zerolog/log"

	"github.com/AyabongaQwabi/espazza-player/internal/app/library"
	"github.com/AyabongaQwabi/espazza-player/internal/domain/playlist"
	"github.com/AyabongaQwabi/espazza-player/internal/domain/track"
)

// Store is a postgres-backed library repository.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a repository on the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// ListAccessible returns the user's own playlists plus public ones,
// newest first, with tracks ordered by position. An empty userID
// returns only public playlists.
func (s *Store) ListAccessible(ctx context.Context, userID string) ([]playlist.Playlist, error) {
	rows, err := s.pool.Query(ctx, `
      SELECT id, name, description, cover_image_url, user_id, is_public, created_at, updated_at
      FROM playlists
      WHERE is_public = TRUE OR user_id = $1
      ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query playlists")
	}
	defer rows.Close()

	var playlists []playlist.Playlist
	for rows.Next() {
		var p playlist.Playlist
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CoverImageURL,
			&p.UserID, &p.IsPublic, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan playlist")
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read playlists")
	}

	for i := range playlists {
		tracks, err := s.listTracks(ctx, playlists[i].ID)
		if err != nil {
			return nil, err
		}
		playlists[i].Tracks = tracks
	}
	return playlists, nil
}

func (s *Store) listTracks(ctx context.Context, playlistID string) ([]track.Track, error) {
	rows, err := s.pool.Query(ctx, `
      SELECT t.id, t.title, t.artist, t.artist_id, t.cover_image_url, t.url, t.release_id, t.plays
      FROM playlist_tracks pt
      JOIN tracks t ON t.id = pt.track_id
      WHERE pt.playlist_id = $1
      ORDER BY pt.position
    `, playlistID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query tracks for playlist %s", playlistID)
	}
	defer rows.Close()

	var tracks []track.Track
	for rows.Next() {
		var t track.Track
		if err := rows.Scan(&t.ID, &t.Title, &t.Artist, &t.ArtistID,
			&t.CoverImageURL, &t.URL, &t.ReleaseID, &t.Plays); err != nil {
			return nil, errors.Wrap(err, "failed to scan track")
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// ListSavedIDs returns the ids of playlists the user has saved.
func (s *Store) ListSavedIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
      SELECT playlist_id FROM user_playlists WHERE user_id = $1 ORDER BY created_at
    `, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query saved playlists")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "failed to scan saved playlist id")
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Create inserts the playlist row, then its membership rows with
// position equal to the slice index. The membership insert is not
// rolled back if it fails after the playlist insert succeeded: the
// empty playlist row is left behind and the error is returned.
func (s *Store) Create(ctx context.Context, p playlist.Playlist) error {
	_, err := s.pool.Exec(ctx, `
      INSERT INTO playlists (id, name, description, cover_image_url, user_id, is_public, created_at, updated_at)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, p.ID, p.Name, p.Description, p.CoverImageURL, p.UserID, p.IsPublic, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "failed to insert playlist")
	}

	for i, t := range p.Tracks {
		if err := s.upsertTrack(ctx, t); err != nil {
			return err
		}
		if _, err := s.pool.Exec(ctx, `
          INSERT INTO playlist_tracks (playlist_id, track_id, position) VALUES ($1, $2, $3)
        `, p.ID, t.ID, i); err != nil {
			zlog.Error().Err(err).Msgf("postgres: playlist %s created but track insert failed", p.ID)
			return errors.Wrap(err, "failed to insert playlist tracks")
		}
	}
	return nil
}

// UpdateMetadata updates the playlist's metadata, scoped by owner.
func (s *Store) UpdateMetadata(ctx context.Context, userID string, p playlist.Playlist) error {
	tag, err := s.pool.Exec(ctx, `
      UPDATE playlists
      SET name = $1, description = $2, cover_image_url = $3, is_public = $4, updated_at = $5
      WHERE id = $6 AND user_id = $7
    `, p.Name, p.Description, p.CoverImageURL, p.IsPublic, p.UpdatedAt, p.ID, userID)
	if err != nil {
		return errors.Wrap(err, "failed to update playlist")
	}
	if tag.RowsAffected() == 0 {
		return library.ErrNotFound
	}
	return nil
}

// Delete removes the playlist; membership and favorite rows go with it
// via ON DELETE CASCADE.
func (s *Store) Delete(ctx context.Context, userID, playlistID string) error {
	tag, err := s.pool.Exec(ctx, `
      DELETE FROM playlists WHERE id = $1 AND user_id = $2
    `, playlistID, userID)
	if err != nil {
		return errors.Wrap(err, "failed to delete playlist")
	}
	if tag.RowsAffected() == 0 {
		return library.ErrNotFound
	}
	return nil
}

// AddTrack inserts a membership row at the next free position. The
// existence check and the insert are separate statements; the primary
// key on (playlist_id, track_id) is the backstop for concurrent adds.
func (s *Store) AddTrack(ctx context.Context, userID, playlistID string, t track.Track) (int, error) {
	if err := s.requireOwner(ctx, userID, playlistID); err != nil {
		return 0, err
	}

	var exists bool
	if err := s.pool.QueryRow(ctx, `
      SELECT EXISTS (SELECT 1 FROM playlist_tracks WHERE playlist_id = $1 AND track_id = $2)
    `, playlistID, t.ID).Scan(&exists); err != nil {
		return 0, errors.Wrap(err, "failed to check track membership")
	}
	if exists {
		return 0, library.ErrDuplicateTrack
	}

	if err := s.upsertTrack(ctx, t); err != nil {
		return 0, err
	}

	var position int
	err := s.pool.QueryRow(ctx, `
      INSERT INTO playlist_tracks (playlist_id, track_id, position)
      VALUES ($1, $2, COALESCE(
        (SELECT MAX(position) + 1 FROM playlist_tracks WHERE playlist_id = $1),
        0
      ))
      RETURNING position
    `, playlistID, t.ID).Scan(&position)
	if err != nil {
		return 0, errors.Wrap(err, "failed to insert playlist track")
	}
	return position, nil
}

// RemoveTrack deletes the membership row and compacts the positions of
// the tracks after it, in one transaction.
func (s *Store) RemoveTrack(ctx context.Context, userID, playlistID, trackID string) error {
	if err := s.requireOwner(ctx, userID, playlistID); err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var position int
	err = tx.QueryRow(ctx, `
      DELETE FROM playlist_tracks WHERE playlist_id = $1 AND track_id = $2
      RETURNING position
    `, playlistID, trackID).Scan(&position)
	if errors.Is(err, pgx.ErrNoRows) {
		return library.ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to delete playlist track")
	}

	if _, err := tx.Exec(ctx, `
      UPDATE playlist_tracks SET position = position - 1
      WHERE playlist_id = $1 AND position > $2
    `, playlistID, position); err != nil {
		return errors.Wrap(err, "failed to compact track positions")
	}

	return errors.Wrap(tx.Commit(ctx), "failed to commit track removal")
}

// SavePlaylist adds the playlist to the user's favorites. Saving an
// already-saved playlist is a no-op.
func (s *Store) SavePlaylist(ctx context.Context, userID, playlistID string) error {
	_, err := s.pool.Exec(ctx, `
      INSERT INTO user_playlists (user_id, playlist_id) VALUES ($1, $2)
      ON CONFLICT DO NOTHING
    `, userID, playlistID)
	return errors.Wrap(err, "failed to save playlist")
}

// UnsavePlaylist removes the playlist from the user's favorites.
func (s *Store) UnsavePlaylist(ctx context.Context, userID, playlistID string) error {
	_, err := s.pool.Exec(ctx, `
      DELETE FROM user_playlists WHERE user_id = $1 AND playlist_id = $2
    `, userID, playlistID)
	return errors.Wrap(err, "failed to unsave playlist")
}

func (s *Store) requireOwner(ctx context.Context, userID, playlistID string) error {
	var ownerID string
	err := s.pool.QueryRow(ctx, `
      SELECT user_id FROM playlists WHERE id = $1
    `, playlistID).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return library.ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to fetch playlist owner")
	}
	if ownerID != userID {
		return library.ErrNotFound
	}
	return nil
}

// upsertTrack keeps the track catalog row current; metadata from the
// latest add wins.
func (s *Store) upsertTrack(ctx context.Context, t track.Track) error {
	_, err := s.pool.Exec(ctx, `
      INSERT INTO tracks (id, title, artist, artist_id, cover_image_url, url, release_id, plays)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
      ON CONFLICT (id) DO UPDATE
      SET title = EXCLUDED.title, artist = EXCLUDED.artist, artist_id = EXCLUDED.artist_id,
          cover_image_url = EXCLUDED.cover_image_url, url = EXCLUDED.url,
          release_id = EXCLUDED.release_id
    `, t.ID, t.Title, t.Artist, t.ArtistID, t.CoverImageURL, t.URL, t.ReleaseID, t.Plays)
	return errors.Wrap(err, "failed to upsert track")
}
