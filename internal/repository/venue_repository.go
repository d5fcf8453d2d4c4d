// Package repository contains data access logic separated from HTTP handlers
// and from the directory service.  This file defines the venue repository:
// CRUD, name lookups and the case-insensitive name search.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/venue-directory/internal/database"
	"github.com/iliyamo/venue-directory/internal/model"
)

const venueColumns = `id, name, city, state, address, phone, image_link, facebook_link, website, seeking_talent, seeking_description`

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(s rowScanner, v *model.Venue) error {
	return s.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone,
		&v.ImageLink, &v.FacebookLink, &v.Website, &v.SeekingTalent, &v.SeekingDescription)
}

// VenueRepo encapsulates all database queries related to venues.  It
// runs against either the connection pool or a transaction.
type VenueRepo struct {
	db database.Querier
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// WithTx returns a copy of the repository whose statements participate
// in tx.  The caller must commit or roll back the transaction.
func (r *VenueRepo) WithTx(tx *sql.Tx) *VenueRepo {
	return &VenueRepo{db: tx}
}

// Create inserts a new venue and its genres.  On success the venue's ID
// field is populated with the auto-generated value.  A name collision
// with an existing venue yields ErrDuplicateName.  Run it inside a
// transaction so the venue row and its genres are written together.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link, website, seeking_talent, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone,
		v.ImageLink, v.FacebookLink, v.Website, v.SeekingTalent, v.SeekingDescription)
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
	v.ID = id
	if v.Genres == nil {
		v.Genres = []string{}
	}
	return venueGenres.replace(ctx, r.db, v.ID, v.Genres)
}

// GetByID fetches a venue with its genres.  It returns ErrVenueNotFound
// if no row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id int64) (*model.Venue, error) {
	q := "SELECT " + venueColumns + " FROM venues WHERE id = ?"
	var v model.Venue
	if err := scanVenue(r.db.QueryRowContext(ctx, q, id), &v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	genres, err := venueGenres.load(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	v.Genres = genres
	return &v, nil
}

// Exists reports whether a venue with the given id is stored.
func (r *VenueRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ? LIMIT 1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountByName counts venues whose name equals name exactly.
func (r *VenueRepo) CountByName(ctx context.Context, name string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues WHERE name = ?`, name).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Update overwrites every mutable column of the venue and replaces its
// genres.  It returns ErrVenueNotFound when no row has v.ID and
// ErrDuplicateName when the new name belongs to another venue.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues
	           SET name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?,
	               facebook_link = ?, website = ?, seeking_talent = ?, seeking_description = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
		v.FacebookLink, v.Website, v.SeekingTalent, v.SeekingDescription, v.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicateName
		}
		return err
	}
	// MySQL reports zero affected rows when nothing changed, so a zero
	// count alone does not mean the row is missing.
	if n, _ := res.RowsAffected(); n == 0 {
		ok, err := r.Exists(ctx, v.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrVenueNotFound
		}
	}
	return venueGenres.replace(ctx, r.db, v.ID, v.Genres)
}

// Delete removes the venue row; genre rows follow by cascade.  Shows
// must already be gone, otherwise the foreign key rejects the delete
// and ErrMissingReference is returned wrapped with the driver error.
func (r *VenueRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return errors.Join(ErrMissingReference, err)
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVenueNotFound
	}
	return nil
}

// ListAll returns every venue ordered by city then id.  Genres are not
// loaded.
func (r *VenueRepo) ListAll(ctx context.Context) ([]model.Venue, error) {
	return r.list(ctx, "SELECT "+venueColumns+" FROM venues ORDER BY city, id")
}

// SearchByName returns venues whose name contains term, ignoring case.
// An empty term matches every venue.
func (r *VenueRepo) SearchByName(ctx context.Context, term string) ([]model.Venue, error) {
	q := "SELECT " + venueColumns + " FROM venues WHERE LOWER(name) LIKE ? ESCAPE '" + likeEscape + "' ORDER BY id"
	return r.list(ctx, q, containsPattern(term))
}

func (r *VenueRepo) list(ctx context.Context, q string, args ...any) ([]model.Venue, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Venue{}
	for rows.Next() {
		var v model.Venue
		if err := scanVenue(rows, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
