package service

import (
	"fmt"
	"strings"

	"github.com/iliyamo/venue-directory/internal/model"
)

// normalizeVenue trims the name and checks the fields that the store
// cannot be trusted to reject.
func normalizeVenue(f model.VenueFields) (model.VenueFields, error) {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return f, fmt.Errorf("%w: name is required", ErrValidation)
	}
	genres, err := normalizeGenres(f.Genres)
	if err != nil {
		return f, err
	}
	f.Genres = genres
	return f, nil
}

func normalizeArtist(f model.ArtistFields) (model.ArtistFields, error) {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return f, fmt.Errorf("%w: name is required", ErrValidation)
	}
	genres, err := normalizeGenres(f.Genres)
	if err != nil {
		return f, err
	}
	f.Genres = genres
	return f, nil
}

// normalizeGenres keeps the tags in the order given.  Blank tags are
// rejected rather than silently dropped.
func normalizeGenres(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for i, g := range in {
		g = strings.TrimSpace(g)
		if g == "" {
			return nil, fmt.Errorf("%w: genre %d is blank", ErrValidation, i+1)
		}
		out = append(out, g)
	}
	return out, nil
}

func validateShow(f model.ShowFields) error {
	switch {
	case f.VenueID <= 0:
		return fmt.Errorf("%w: venue_id is required", ErrValidation)
	case f.ArtistID <= 0:
		return fmt.Errorf("%w: artist_id is required", ErrValidation)
	case f.StartTime.IsZero():
		return fmt.Errorf("%w: start_time is required", ErrValidation)
	}
	return nil
}
