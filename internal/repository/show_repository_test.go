package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-directory/internal/model"
	"github.com/iliyamo/venue-directory/internal/testhelpers"
)

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 20, 0, 0, 0, time.UTC)
}

type showFixture struct {
	venues  *VenueRepo
	artists *ArtistRepo
	shows   *ShowRepo
	venue   *model.Venue
	artist  *model.Artist
}

func newShowFixture(t *testing.T) showFixture {
	t.Helper()
	db := testhelpers.NewSQLiteDB(t)
	f := showFixture{
		venues:  NewVenueRepo(db),
		artists: NewArtistRepo(db),
		shows:   NewShowRepo(db),
		venue:   &model.Venue{Name: "The Musical Hop", ImageLink: "hop.png"},
		artist:  &model.Artist{Name: "Guns N Petals", ImageLink: "gnp.png"},
	}
	require.NoError(t, f.venues.Create(context.Background(), f.venue))
	require.NoError(t, f.artists.Create(context.Background(), f.artist))
	return f
}

func TestShowRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	f := newShowFixture(t)

	loc := time.FixedZone("PST", -8*3600)
	s := &model.Show{VenueID: f.venue.ID, ArtistID: f.artist.ID, StartTime: time.Date(2035, 4, 1, 12, 30, 0, 500, loc)}
	require.NoError(t, f.shows.Create(ctx, s))
	require.NotZero(t, s.ID)

	got, err := f.shows.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2035, 4, 1, 20, 30, 0, 0, time.UTC), got.StartTime)
	assert.Equal(t, s.StartTime, got.StartTime)
}

func TestShowRepo_MissingReference(t *testing.T) {
	f := newShowFixture(t)
	err := f.shows.Create(context.Background(), &model.Show{VenueID: 999, ArtistID: f.artist.ID, StartTime: at(2035, 1, 1)})
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestShowRepo_ListsOrderedWithParties(t *testing.T) {
	ctx := context.Background()
	f := newShowFixture(t)
	for _, st := range []time.Time{at(2035, 6, 1), at(2019, 5, 21), at(2035, 1, 1)} {
		require.NoError(t, f.shows.Create(ctx, &model.Show{VenueID: f.venue.ID, ArtistID: f.artist.ID, StartTime: st}))
	}

	byVenue, err := f.shows.ListByVenue(ctx, f.venue.ID)
	require.NoError(t, err)
	require.Len(t, byVenue, 3)
	assert.Equal(t, at(2019, 5, 21), byVenue[0].StartTime)
	assert.Equal(t, at(2035, 6, 1), byVenue[2].StartTime)
	assert.Equal(t, "Guns N Petals", byVenue[0].ArtistName)
	assert.Equal(t, "gnp.png", byVenue[0].ArtistImageLink)
	assert.Equal(t, "hop.png", byVenue[0].VenueImageLink)

	byArtist, err := f.shows.ListByArtist(ctx, f.artist.ID)
	require.NoError(t, err)
	assert.Len(t, byArtist, 3)

	all, err := f.shows.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, byVenue, all)

	none, err := f.shows.ListByVenue(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestShowRepo_CountUpcomingByVenue(t *testing.T) {
	ctx := context.Background()
	f := newShowFixture(t)
	other := &model.Venue{Name: "Other"}
	require.NoError(t, f.venues.Create(ctx, other))

	now := at(2030, 1, 1)
	for _, s := range []model.Show{
		{VenueID: f.venue.ID, ArtistID: f.artist.ID, StartTime: now.Add(-time.Hour)},
		{VenueID: f.venue.ID, ArtistID: f.artist.ID, StartTime: now},
		{VenueID: f.venue.ID, ArtistID: f.artist.ID, StartTime: now.Add(48 * time.Hour)},
		{VenueID: other.ID, ArtistID: f.artist.ID, StartTime: now.Add(-48 * time.Hour)},
	} {
		require.NoError(t, f.shows.Create(ctx, &s))
	}

	counts, err := f.shows.CountUpcomingByVenue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{f.venue.ID: 2}, counts)
}

func TestShowRepo_DeleteAndDeleteByArtist(t *testing.T) {
	ctx := context.Background()
	f := newShowFixture(t)
	s1 := &model.Show{VenueID: f.venue.ID, ArtistID: f.artist.ID, StartTime: at(2035, 1, 1)}
	s2 := &model.Show{VenueID: f.venue.ID, ArtistID: f.artist.ID, StartTime: at(2035, 1, 2)}
	require.NoError(t, f.shows.Create(ctx, s1))
	require.NoError(t, f.shows.Create(ctx, s2))

	require.NoError(t, f.shows.Delete(ctx, s1.ID))
	assert.ErrorIs(t, f.shows.Delete(ctx, s1.ID), ErrShowNotFound)
	_, err := f.shows.GetByID(ctx, s1.ID)
	assert.ErrorIs(t, err, ErrShowNotFound)

	n, err := f.shows.DeleteByArtist(ctx, f.artist.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	require.NoError(t, f.artists.Delete(ctx, f.artist.ID))
}
