package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/venue-directory/internal/model"
	"github.com/iliyamo/venue-directory/internal/repository"
)

// ListVenueAreas groups every venue by (city, state).  Groups appear in
// the order their first venue is returned by the store, which sorts by
// city.  Each venue carries the number of its shows starting at or
// after the time of the call.
func (d *Directory) ListVenueAreas(ctx context.Context) ([]model.Area, error) {
	venues, err := d.venues.ListAll(ctx)
	if err != nil {
		return nil, d.storeFailure("list venues", "", err)
	}
	counts, err := d.shows.CountUpcomingByVenue(ctx, d.instant())
	if err != nil {
		return nil, d.storeFailure("count upcoming shows", "", err)
	}

	type areaKey struct{ city, state string }
	index := make(map[areaKey]int)
	areas := []model.Area{}
	for _, v := range venues {
		k := areaKey{v.City, v.State}
		i, ok := index[k]
		if !ok {
			i = len(areas)
			index[k] = i
			areas = append(areas, model.Area{City: v.City, State: v.State, Venues: []model.VenueSummary{}})
		}
		areas[i].Venues = append(areas[i].Venues, model.VenueSummary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: counts[v.ID],
		})
	}
	return areas, nil
}

// GetVenue returns the stored venue, for example to pre-fill an edit form.
func (d *Directory) GetVenue(ctx context.Context, id int64) (*model.Venue, error) {
	v, err := d.venues.GetByID(ctx, id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, d.storeFailure("get venue", "", err)
	}
	return v, nil
}

// GetArtist returns the stored artist.
func (d *Directory) GetArtist(ctx context.Context, id int64) (*model.Artist, error) {
	a, err := d.artists.GetByID(ctx, id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, d.storeFailure("get artist", "", err)
	}
	return a, nil
}

// VenueDetail returns the venue with its shows split into past
// (start strictly before now) and upcoming (start at or after now).
func (d *Directory) VenueDetail(ctx context.Context, id int64) (*model.VenueDetail, error) {
	v, err := d.GetVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := d.shows.ListByVenue(ctx, id)
	if err != nil {
		return nil, d.storeFailure("list venue shows", v.Name, err)
	}
	past, upcoming := splitShows(shows, d.instant(), func(s model.ShowWithParties) model.ArtistShow {
		return model.ArtistShow{
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       s.StartTime,
		}
	})
	return &model.VenueDetail{
		Venue:              *v,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// ArtistDetail returns the artist with its shows split around now.
func (d *Directory) ArtistDetail(ctx context.Context, id int64) (*model.ArtistDetail, error) {
	a, err := d.GetArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := d.shows.ListByArtist(ctx, id)
	if err != nil {
		return nil, d.storeFailure("list artist shows", a.Name, err)
	}
	past, upcoming := splitShows(shows, d.instant(), func(s model.ShowWithParties) model.VenueShow {
		return model.VenueShow{
			VenueID:        s.VenueID,
			VenueName:      s.VenueName,
			VenueImageLink: s.VenueImageLink,
			StartTime:      s.StartTime,
		}
	})
	return &model.ArtistDetail{
		Artist:             *a,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// splitShows partitions shows around now, keeping their order.  Both
// returned slices are non-nil.
func splitShows[T any](shows []model.ShowWithParties, now time.Time, conv func(model.ShowWithParties) T) (past, upcoming []T) {
	past, upcoming = []T{}, []T{}
	for _, s := range shows {
		if s.StartTime.Before(now) {
			past = append(past, conv(s))
		} else {
			upcoming = append(upcoming, conv(s))
		}
	}
	return past, upcoming
}

// SearchVenues returns the venues whose name contains term, ignoring
// case, with the match count.  An empty term matches every venue.
func (d *Directory) SearchVenues(ctx context.Context, term string) (model.SearchResult[model.VenueSummary], error) {
	venues, err := d.venues.SearchByName(ctx, term)
	if err != nil {
		return model.SearchResult[model.VenueSummary]{}, d.storeFailure("search venues", term, err)
	}
	counts, err := d.shows.CountUpcomingByVenue(ctx, d.instant())
	if err != nil {
		return model.SearchResult[model.VenueSummary]{}, d.storeFailure("count upcoming shows", term, err)
	}
	out := make([]model.VenueSummary, 0, len(venues))
	for _, v := range venues {
		out = append(out, model.VenueSummary{ID: v.ID, Name: v.Name, NumUpcomingShows: counts[v.ID]})
	}
	return model.SearchResult[model.VenueSummary]{Count: len(out), Data: out}, nil
}

// SearchArtists returns the artists whose name contains term, ignoring
// case, with the match count.
func (d *Directory) SearchArtists(ctx context.Context, term string) (model.SearchResult[model.ArtistSummary], error) {
	artists, err := d.artists.SearchByName(ctx, term)
	if err != nil {
		return model.SearchResult[model.ArtistSummary]{}, d.storeFailure("search artists", term, err)
	}
	out := make([]model.ArtistSummary, 0, len(artists))
	for _, a := range artists {
		out = append(out, model.ArtistSummary{ID: a.ID, Name: a.Name})
	}
	return model.SearchResult[model.ArtistSummary]{Count: len(out), Data: out}, nil
}

// ListArtists returns every artist's id and name ordered by city.
func (d *Directory) ListArtists(ctx context.Context) ([]model.ArtistSummary, error) {
	artists, err := d.artists.ListAll(ctx)
	if err != nil {
		return nil, d.storeFailure("list artists", "", err)
	}
	out := make([]model.ArtistSummary, 0, len(artists))
	for _, a := range artists {
		out = append(out, model.ArtistSummary{ID: a.ID, Name: a.Name})
	}
	return out, nil
}

// ListShows returns every show with both parties, earliest first.
func (d *Directory) ListShows(ctx context.Context) ([]model.ShowListing, error) {
	shows, err := d.shows.ListAll(ctx)
	if err != nil {
		return nil, d.storeFailure("list shows", "", err)
	}
	out := make([]model.ShowListing, 0, len(shows))
	for _, s := range shows {
		out = append(out, model.ShowListing{
			ID:              s.ID,
			VenueID:         s.VenueID,
			VenueName:       s.VenueName,
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       s.StartTime,
		})
	}
	return out, nil
}
