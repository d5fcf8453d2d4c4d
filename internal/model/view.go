package model

import "time"

// Area groups the venues of one city/state pair in the venue listing.
type Area struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// VenueSummary is one venue inside an Area.  NumUpcomingShows counts
// only shows starting at or after the time the listing was built.
type VenueSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// ArtistSummary is one row of the artist listing.
type ArtistSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SearchResult carries the matches of a name search and their count.
type SearchResult[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}

// ArtistShow is a show as listed on a venue page: it names the artist.
type ArtistShow struct {
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// VenueShow is a show as listed on an artist page: it names the venue.
type VenueShow struct {
	VenueID        int64     `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}

// VenueDetail is a venue with its shows split around "now".
type VenueDetail struct {
	Venue
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

// ArtistDetail is an artist with its shows split around "now".
type ArtistDetail struct {
	Artist
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// ShowListing is one row of the show listing.
type ShowListing struct {
	ID              int64     `json:"id"`
	VenueID         int64     `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}
