package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-directory/internal/model"
	"github.com/iliyamo/venue-directory/internal/testhelpers"
)

func TestVenueRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepo(testhelpers.NewSQLiteDB(t))

	v := &model.Venue{Name: "The Musical Hop", City: "San Francisco", State: "CA", Genres: []string{"Jazz", "Blues", "Folk"}, SeekingTalent: true}
	require.NoError(t, repo.Create(ctx, v))
	require.NotZero(t, v.ID)

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Musical Hop", got.Name)
	assert.Equal(t, []string{"Jazz", "Blues", "Folk"}, got.Genres)
	assert.True(t, got.SeekingTalent)
}

func TestVenueRepo_GetByIDMissing(t *testing.T) {
	repo := NewVenueRepo(testhelpers.NewSQLiteDB(t))
	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrVenueNotFound)

	ok, err := repo.Exists(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVenueRepo_NoGenresIsEmptySlice(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepo(testhelpers.NewSQLiteDB(t))
	v := &model.Venue{Name: "Bare"}
	require.NoError(t, repo.Create(ctx, v))

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Genres)
	assert.Empty(t, got.Genres)
}

func TestVenueRepo_UniqueName(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepo(testhelpers.NewSQLiteDB(t))
	require.NoError(t, repo.Create(ctx, &model.Venue{Name: "Park Square"}))

	err := repo.Create(ctx, &model.Venue{Name: "Park Square"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	n, err := repo.CountByName(ctx, "Park Square")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Case differs, so this is another venue.
	require.NoError(t, repo.Create(ctx, &model.Venue{Name: "park square"}))
}

func TestVenueRepo_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepo(testhelpers.NewSQLiteDB(t))
	a := &model.Venue{Name: "A", Genres: []string{"Rock"}}
	b := &model.Venue{Name: "B"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	a.City, a.Genres = "Austin", []string{"Blues", "Jazz"}
	require.NoError(t, repo.Update(ctx, a))
	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Austin", got.City)
	assert.Equal(t, []string{"Blues", "Jazz"}, got.Genres)

	// Unchanged row still counts as found.
	require.NoError(t, repo.Update(ctx, got))

	b.Name = "A"
	assert.ErrorIs(t, repo.Update(ctx, b), ErrDuplicateName)

	assert.ErrorIs(t, repo.Update(ctx, &model.Venue{ID: 999, Name: "Z"}), ErrVenueNotFound)
}

func TestVenueRepo_DeleteBlockedByShows(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.NewSQLiteDB(t)
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)

	v := &model.Venue{Name: "V", Genres: []string{"Jazz"}}
	a := &model.Artist{Name: "A"}
	require.NoError(t, venues.Create(ctx, v))
	require.NoError(t, artists.Create(ctx, a))
	require.NoError(t, shows.Create(ctx, &model.Show{VenueID: v.ID, ArtistID: a.ID, StartTime: at(2035, 1, 1)}))

	assert.ErrorIs(t, venues.Delete(ctx, v.ID), ErrMissingReference)

	n, err := shows.DeleteByVenue(ctx, v.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	require.NoError(t, venues.Delete(ctx, v.ID))
	assert.ErrorIs(t, venues.Delete(ctx, v.ID), ErrVenueNotFound)

	// Genre rows go with the venue.
	var left int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM venue_genres`).Scan(&left))
	assert.Zero(t, left)
}

func TestVenueRepo_SearchByName(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepo(testhelpers.NewSQLiteDB(t))
	for _, name := range []string{"The Musical Hop", "The Dueling Pianos Bar", "Park Square Live Music & Coffee", "100% Rock", "CAFÉ ÖLAND"} {
		require.NoError(t, repo.Create(ctx, &model.Venue{Name: name}))
	}

	tests := []struct {
		term string
		want []string
	}{
		{"Hop", []string{"The Musical Hop"}},
		{"hop", []string{"The Musical Hop"}},
		{"Music", []string{"The Musical Hop", "Park Square Live Music & Coffee"}},
		{"%", []string{"100% Rock"}},
		{"_", nil},
		{"CAFÉ", []string{"CAFÉ ÖLAND"}},
		{"café", []string{"CAFÉ ÖLAND"}},
		{"öland", []string{"CAFÉ ÖLAND"}},
		{"É Ö", []string{"CAFÉ ÖLAND"}},
		{"", []string{"The Musical Hop", "The Dueling Pianos Bar", "Park Square Live Music & Coffee", "100% Rock", "CAFÉ ÖLAND"}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := repo.SearchByName(ctx, tt.term)
			require.NoError(t, err)
			var names []string
			for _, v := range got {
				names = append(names, v.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestVenueRepo_ListAllOrdersByCity(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepo(testhelpers.NewSQLiteDB(t))
	require.NoError(t, repo.Create(ctx, &model.Venue{Name: "1", City: "San Francisco"}))
	require.NoError(t, repo.Create(ctx, &model.Venue{Name: "2", City: "New York"}))
	require.NoError(t, repo.Create(ctx, &model.Venue{Name: "3", City: "San Francisco"}))

	got, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"2", "1", "3"}, []string{got[0].Name, got[1].Name, got[2].Name})
}
