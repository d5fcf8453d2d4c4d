package model

// Artist represents a performer that can be booked at venues.  It
// corresponds to a row in the `artists` table with genres stored in
// `artist_genres`.
type Artist struct {
	ID                 int64    `json:"id"`                  // artists.id
	Name               string   `json:"name"`                // artists.name
	City               string   `json:"city"`                // artists.city
	State              string   `json:"state"`               // artists.state
	Phone              string   `json:"phone"`               // artists.phone
	ImageLink          string   `json:"image_link"`          // artists.image_link
	FacebookLink       string   `json:"facebook_link"`       // artists.facebook_link
	Website            string   `json:"website"`             // artists.website
	Genres             []string `json:"genres"`              // artist_genres.name ordered by position
	SeekingVenue       bool     `json:"seeking_venue"`       // artists.seeking_venue
	SeekingDescription string   `json:"seeking_description"` // artists.seeking_description
}

// ArtistFields is the validated field set accepted by create and update.
type ArtistFields struct {
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	ImageLink          string   `json:"image_link"`
	FacebookLink       string   `json:"facebook_link"`
	Website            string   `json:"website"`
	Genres             []string `json:"genres"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
}

// Apply overwrites every mutable attribute of a with f.
func (f ArtistFields) Apply(a *Artist) {
	a.Name = f.Name
	a.City = f.City
	a.State = f.State
	a.Phone = f.Phone
	a.ImageLink = f.ImageLink
	a.FacebookLink = f.FacebookLink
	a.Website = f.Website
	a.Genres = append([]string(nil), f.Genres...)
	a.SeekingVenue = f.SeekingVenue
	a.SeekingDescription = f.SeekingDescription
}
