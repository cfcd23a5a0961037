package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AutoMigrate creates the playlist schema if it does not exist yet.
func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS playlists (
          id              TEXT PRIMARY KEY,
          name            TEXT NOT NULL,
          description     TEXT NOT NULL DEFAULT '',
          cover_image_url TEXT NOT NULL DEFAULT '',
          user_id         TEXT NOT NULL,
          is_public       BOOLEAN NOT NULL DEFAULT FALSE,
          created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
          updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS tracks (
          id              TEXT PRIMARY KEY,
          title           TEXT NOT NULL,
          artist          TEXT NOT NULL,
          artist_id       TEXT NOT NULL DEFAULT '',
          cover_image_url TEXT NOT NULL DEFAULT '',
          url             TEXT NOT NULL,
          release_id      TEXT NOT NULL DEFAULT '',
          plays           INT NOT NULL DEFAULT 0
      )
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS playlist_tracks (
          playlist_id TEXT NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
          track_id    TEXT NOT NULL REFERENCES tracks(id),
          position    INT NOT NULL,
          PRIMARY KEY (playlist_id, track_id)
      )
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE INDEX IF NOT EXISTS idx_playlist_tracks_position
      ON playlist_tracks(playlist_id, position)
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS user_playlists (
          user_id     TEXT NOT NULL,
          playlist_id TEXT NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
          created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
          PRIMARY KEY (user_id, playlist_id)
      )
    `); err != nil {
		return err
	}

	return nil
}
