// Package repository contains data access logic for Show domain operations.
// A Show books one artist at one venue at a start time.  Relationship
// queries return shows joined with both parties so views can be built
// without a lookup per row.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/venue-directory/internal/database"
	"github.com/iliyamo/venue-directory/internal/model"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db database.Querier
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// WithTx returns a copy of the repository bound to tx.
func (r *ShowRepo) WithTx(tx *sql.Tx) *ShowRepo {
	return &ShowRepo{db: tx}
}

// Create inserts a new show and assigns the generated ID back to s.
// StartTime is stored in UTC at second precision and s is updated to
// the stored value.  A foreign key failure yields ErrMissingReference.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (venue_id, artist_id, start_time) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.VenueID, s.ArtistID, formatDBTime(s.StartTime))
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return errors.Join(ErrMissingReference, err)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = id
	s.StartTime = s.StartTime.UTC().Truncate(time.Second)
	return nil
}

// GetByID retrieves a show by its ID.  It returns ErrShowNotFound if
// there is no matching row.
func (r *ShowRepo) GetByID(ctx context.Context, id int64) (*model.Show, error) {
	const q = `SELECT id, venue_id, artist_id, start_time FROM shows WHERE id = ?`
	var (
		s  model.Show
		st dbTime
	)
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.VenueID, &s.ArtistID, &st); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	s.StartTime = st.T
	return &s, nil
}

// Delete removes a single show.  It returns ErrShowNotFound when no row
// has the id.
func (r *ShowRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shows WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShowNotFound
	}
	return nil
}

// DeleteByVenue removes every show at the venue and reports how many
// rows were deleted.  Zero is not an error.
func (r *ShowRepo) DeleteByVenue(ctx context.Context, venueID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, venueID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// DeleteByArtist removes every show of the artist.
func (r *ShowRepo) DeleteByArtist(ctx context.Context, artistID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shows WHERE artist_id = ?`, artistID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

const partiesSelect = `SELECT s.id, s.venue_id, s.artist_id, s.start_time, v.name, v.image_link, a.name, a.image_link
               FROM shows s
               JOIN venues v  ON v.id = s.venue_id
               JOIN artists a ON a.id = s.artist_id`

// ListByVenue returns all shows at a venue ordered by start time
// ascending.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID int64) ([]model.ShowWithParties, error) {
	return r.listParties(ctx, partiesSelect+` WHERE s.venue_id = ? ORDER BY s.start_time ASC, s.id ASC`, venueID)
}

// ListByArtist returns all shows of an artist ordered by start time
// ascending.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID int64) ([]model.ShowWithParties, error) {
	return r.listParties(ctx, partiesSelect+` WHERE s.artist_id = ? ORDER BY s.start_time ASC, s.id ASC`, artistID)
}

// ListAll returns every show ordered by start time ascending.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowWithParties, error) {
	return r.listParties(ctx, partiesSelect+` ORDER BY s.start_time ASC, s.id ASC`)
}

func (r *ShowRepo) listParties(ctx context.Context, q string, args ...any) ([]model.ShowWithParties, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []model.ShowWithParties{}
	for rows.Next() {
		var (
			s  model.ShowWithParties
			st dbTime
		)
		if err := rows.Scan(
			&s.ID, &s.VenueID, &s.ArtistID, &st,
			&s.VenueName, &s.VenueImageLink, &s.ArtistName, &s.ArtistImageLink,
		); err != nil {
			return nil, err
		}
		s.StartTime = st.T
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CountUpcomingByVenue counts, per venue, the shows starting at or
// after since.  Venues without such shows are absent from the map.
func (r *ShowRepo) CountUpcomingByVenue(ctx context.Context, since time.Time) (map[int64]int, error) {
	const q = `SELECT venue_id, COUNT(*) FROM shows WHERE start_time >= ? GROUP BY venue_id`
	rows, err := r.db.QueryContext(ctx, q, formatDBTime(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[int64]int)
	for rows.Next() {
		var (
			id int64
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
