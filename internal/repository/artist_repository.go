package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/venue-directory/internal/database"
	"github.com/iliyamo/venue-directory/internal/model"
)

const artistColumns = `id, name, city, state, phone, image_link, facebook_link, website, seeking_venue, seeking_description`

func scanArtist(s rowScanner, a *model.Artist) error {
	return s.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone,
		&a.ImageLink, &a.FacebookLink, &a.Website, &a.SeekingVenue, &a.SeekingDescription)
}

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db database.Querier
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// WithTx returns a copy of the repository bound to tx.
func (r *ArtistRepo) WithTx(tx *sql.Tx) *ArtistRepo {
	return &ArtistRepo{db: tx}
}

// Create inserts a new artist and its genres and assigns the generated
// ID back to a.  A name collision yields ErrDuplicateName.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	const q = `INSERT INTO artists (name, city, state, phone, image_link, facebook_link, website, seeking_venue, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone,
		a.ImageLink, a.FacebookLink, a.Website, a.SeekingVenue, a.SeekingDescription)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicateName
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = id
	if a.Genres == nil {
		a.Genres = []string{}
	}
	return artistGenres.replace(ctx, r.db, a.ID, a.Genres)
}

// GetByID retrieves an artist with its genres.  It returns
// ErrArtistNotFound if there is no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
	q := "SELECT " + artistColumns + " FROM artists WHERE id = ?"
	var a model.Artist
	if err := scanArtist(r.db.QueryRowContext(ctx, q, id), &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	genres, err := artistGenres.load(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	a.Genres = genres
	return &a, nil
}

// Exists reports whether an artist with the given id is stored.
func (r *ArtistRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ? LIMIT 1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountByName counts artists whose name equals name exactly.
func (r *ArtistRepo) CountByName(ctx context.Context, name string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM artists WHERE name = ?`, name).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Update overwrites every mutable column of the artist and replaces its
// genres.  Missing rows yield ErrArtistNotFound.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	const q = `UPDATE artists
	           SET name = ?, city = ?, state = ?, phone = ?, image_link = ?, facebook_link = ?,
	               website = ?, seeking_venue = ?, seeking_description = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, a.ImageLink,
		a.FacebookLink, a.Website, a.SeekingVenue, a.SeekingDescription, a.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicateName
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		ok, err := r.Exists(ctx, a.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrArtistNotFound
		}
	}
	return artistGenres.replace(ctx, r.db, a.ID, a.Genres)
}

// Delete removes the artist row.  Shows referencing the artist must be
// deleted first.
func (r *ArtistRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return errors.Join(ErrMissingReference, err)
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrArtistNotFound
	}
	return nil
}

// ListAll returns every artist ordered by city then id.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]model.Artist, error) {
	return r.list(ctx, "SELECT "+artistColumns+" FROM artists ORDER BY city, id")
}

// SearchByName returns artists whose name contains term, ignoring case.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string) ([]model.Artist, error) {
	q := "SELECT " + artistColumns + " FROM artists WHERE LOWER(name) LIKE ? ESCAPE '" + likeEscape + "' ORDER BY id"
	return r.list(ctx, q, containsPattern(term))
}

func (r *ArtistRepo) list(ctx context.Context, q string, args ...any) ([]model.Artist, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Artist{}
	for rows.Next() {
		var a model.Artist
		if err := scanArtist(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
