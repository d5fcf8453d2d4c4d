package model

import "time"

// Show represents a booking of one artist at one venue.  Shows have
// their own surrogate ID so the same venue and artist may be paired
// any number of times at different start times.
//
// Fields:
//  ID        – primary key identifier.
//  VenueID   – venue hosting the show.
//  ArtistID  – artist performing.
//  StartTime – when the show begins, always UTC.
type Show struct {
	ID        int64     `json:"id"`         // shows.id
	VenueID   int64     `json:"venue_id"`   // shows.venue_id
	ArtistID  int64     `json:"artist_id"`  // shows.artist_id
	StartTime time.Time `json:"start_time"` // shows.start_time
}

// ShowFields is the field set accepted when booking a show.
type ShowFields struct {
	VenueID   int64     `json:"venue_id"`
	ArtistID  int64     `json:"artist_id"`
	StartTime time.Time `json:"start_time"`
}

// ShowWithParties is a show joined with the names and image of both
// sides of the booking.  Repositories return it for relationship
// queries so views never need a second lookup per show.
type ShowWithParties struct {
	Show
	VenueName       string
	VenueImageLink  string
	ArtistName      string
	ArtistImageLink string
}
