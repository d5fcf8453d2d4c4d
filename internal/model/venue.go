package model

// Venue represents a place that hosts shows.  It corresponds to a row
// in the `venues` table; Genres is loaded from `venue_genres` in
// position order.
//
// Fields:
//  ID                 – primary key identifier, assigned by the store.
//  Name               – display name, also the search key.
//  City, State        – location used for grouping in listings.
//  Address, Phone     – free text contact details.
//  ImageLink          – picture shown next to the venue.
//  FacebookLink       – optional social link.
//  Website            – optional website.
//  Genres             – ordered genre tags.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – free text describing what the venue looks for.
type Venue struct {
	ID                 int64    `json:"id"`                  // venues.id
	Name               string   `json:"name"`                // venues.name
	City               string   `json:"city"`                // venues.city
	State              string   `json:"state"`               // venues.state
	Address            string   `json:"address"`             // venues.address
	Phone              string   `json:"phone"`               // venues.phone
	ImageLink          string   `json:"image_link"`          // venues.image_link
	FacebookLink       string   `json:"facebook_link"`       // venues.facebook_link
	Website            string   `json:"website"`             // venues.website
	Genres             []string `json:"genres"`              // venue_genres.name ordered by position
	SeekingTalent      bool     `json:"seeking_talent"`      // venues.seeking_talent
	SeekingDescription string   `json:"seeking_description"` // venues.seeking_description
}

// VenueFields is the validated field set accepted by create and update.
// Every field is written on update; there are no partial updates.
type VenueFields struct {
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Address            string   `json:"address"`
	Phone              string   `json:"phone"`
	ImageLink          string   `json:"image_link"`
	FacebookLink       string   `json:"facebook_link"`
	Website            string   `json:"website"`
	Genres             []string `json:"genres"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`
}

// Apply overwrites every mutable attribute of v with f.
func (f VenueFields) Apply(v *Venue) {
	v.Name = f.Name
	v.City = f.City
	v.State = f.State
	v.Address = f.Address
	v.Phone = f.Phone
	v.ImageLink = f.ImageLink
	v.FacebookLink = f.FacebookLink
	v.Website = f.Website
	v.Genres = append([]string(nil), f.Genres...)
	v.SeekingTalent = f.SeekingTalent
	v.SeekingDescription = f.SeekingDescription
}
