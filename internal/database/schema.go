package database

import (
	"context"
	"database/sql"
	"fmt"
)

// mysqlSchema creates the directory tables on MySQL.  Names use a
// binary collation so the uniqueness rule matches exact names only.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) COLLATE utf8mb4_bin NOT NULL,
		city VARCHAR(120) NOT NULL DEFAULT '',
		state VARCHAR(120) NOT NULL DEFAULT '',
		address VARCHAR(120) NOT NULL DEFAULT '',
		phone VARCHAR(120) NOT NULL DEFAULT '',
		image_link VARCHAR(500) NOT NULL DEFAULT '',
		facebook_link VARCHAR(120) NOT NULL DEFAULT '',
		website VARCHAR(120) NOT NULL DEFAULT '',
		seeking_talent BOOLEAN NOT NULL DEFAULT FALSE,
		seeking_description VARCHAR(500) NOT NULL DEFAULT '',
		UNIQUE KEY uq_venues_name (name),
		KEY idx_venues_city (city)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS artists (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) COLLATE utf8mb4_bin NOT NULL,
		city VARCHAR(120) NOT NULL DEFAULT '',
		state VARCHAR(120) NOT NULL DEFAULT '',
		phone VARCHAR(120) NOT NULL DEFAULT '',
		image_link VARCHAR(500) NOT NULL DEFAULT '',
		facebook_link VARCHAR(120) NOT NULL DEFAULT '',
		website VARCHAR(120) NOT NULL DEFAULT '',
		seeking_venue BOOLEAN NOT NULL DEFAULT FALSE,
		seeking_description VARCHAR(500) NOT NULL DEFAULT '',
		UNIQUE KEY uq_artists_name (name),
		KEY idx_artists_city (city)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS venue_genres (
		venue_id BIGINT NOT NULL,
		position INT NOT NULL,
		name VARCHAR(120) NOT NULL,
		PRIMARY KEY (venue_id, position),
		CONSTRAINT fk_venue_genres_venue FOREIGN KEY (venue_id) REFERENCES venues (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS artist_genres (
		artist_id BIGINT NOT NULL,
		position INT NOT NULL,
		name VARCHAR(120) NOT NULL,
		PRIMARY KEY (artist_id, position),
		CONSTRAINT fk_artist_genres_artist FOREIGN KEY (artist_id) REFERENCES artists (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS shows (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		venue_id BIGINT NOT NULL,
		artist_id BIGINT NOT NULL,
		start_time DATETIME NOT NULL,
		KEY idx_shows_venue (venue_id, start_time),
		KEY idx_shows_artist (artist_id, start_time),
		CONSTRAINT fk_shows_venue FOREIGN KEY (venue_id) REFERENCES venues (id),
		CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// sqliteSchema mirrors mysqlSchema.  start_time is TEXT holding
// "YYYY-MM-DD HH:MM:SS" in UTC, which sorts chronologically.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		image_link TEXT NOT NULL DEFAULT '',
		facebook_link TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		seeking_talent INTEGER NOT NULL DEFAULT 0,
		seeking_description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_venues_city ON venues (city)`,
	`CREATE TABLE IF NOT EXISTS artists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		image_link TEXT NOT NULL DEFAULT '',
		facebook_link TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		seeking_venue INTEGER NOT NULL DEFAULT 0,
		seeking_description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_artists_city ON artists (city)`,
	`CREATE TABLE IF NOT EXISTS venue_genres (
		venue_id INTEGER NOT NULL REFERENCES venues (id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY (venue_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS artist_genres (
		artist_id INTEGER NOT NULL REFERENCES artists (id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY (artist_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS shows (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		venue_id INTEGER NOT NULL REFERENCES venues (id),
		artist_id INTEGER NOT NULL REFERENCES artists (id),
		start_time TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_shows_venue ON shows (venue_id, start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_shows_artist ON shows (artist_id, start_time)`,
}

// Migrate creates any missing tables and indexes.  Every statement is
// idempotent so it is safe to run on each start.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	var stmts []string
	switch d {
	case MySQL:
		stmts = mysqlSchema
	case SQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("unknown dialect %q", d)
	}
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
