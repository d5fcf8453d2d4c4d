package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/venue-directory/internal/database"
)

// genreTable describes one of the ordered tag tables.
type genreTable struct {
	table string // venue_genres or artist_genres
	owner string // owning foreign key column
}

var (
	venueGenres  = genreTable{table: "venue_genres", owner: "venue_id"}
	artistGenres = genreTable{table: "artist_genres", owner: "artist_id"}
)

// replace rewrites the genre rows of owner id so they equal genres in
// order.  It must run inside the caller's transaction to be atomic with
// the owning row's write.
func (g genreTable) replace(ctx context.Context, q database.Querier, id int64, genres []string) error {
	if _, err := q.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = ?", g.table, g.owner), id); err != nil {
		return err
	}
	ins := fmt.Sprintf("INSERT INTO %s (%s, position, name) VALUES (?, ?, ?)", g.table, g.owner)
	for i, name := range genres {
		if _, err := q.ExecContext(ctx, ins, id, i, name); err != nil {
			return err
		}
	}
	return nil
}

// load returns the genres of owner id in stored order.  An owner with no
// genres yields an empty, non-nil slice.
func (g genreTable) load(ctx context.Context, q database.Querier, id int64) ([]string, error) {
	rows, err := q.QueryContext(ctx,
		fmt.Sprintf("SELECT name FROM %s WHERE %s = ? ORDER BY position", g.table, g.owner), id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
