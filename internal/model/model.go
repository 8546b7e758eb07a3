// Package model defines domain entities exchanged with the HBnB API.
package model

import "time"

// Tokens collects the issued access token (refresh not offered by the API).
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time // decoded JWT expiry, for diagnostics only
}

// Listing is a single catalog entry as returned by GET /places.
type Listing struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	PriceByNight float64 `json:"price_by_night"`
	Description  *string `json:"description"` // nullable on the wire
}

// Amenity is a named feature attached to a listing.
type Amenity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Review is created server-side on submission; the client never assigns an ID.
type Review struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"` // 1..5, server re-validates
	Comment   string    `json:"comment"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ListingDetail is a listing plus its nested amenities and reviews.
type ListingDetail struct {
	Listing
	MaxGuests       int       `json:"max_guests"`
	NumberRooms     int       `json:"number_rooms"`
	NumberBathrooms int       `json:"number_bathrooms"`
	Amenities       []Amenity `json:"amenities"`
	Reviews         []Review  `json:"reviews"`
}
