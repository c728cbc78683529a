package model

import "time"

// Listing represents a rentable travel property offered on the
// marketplace.  Listings are created by a host and can be booked by
// guests for a date range.  Soft deletion is implemented through the
// IsActive flag: inactive listings are excluded from search,
// availability and booking operations but their historical bookings
// and reviews remain intact.
//
// Fields:
//  ID                 – primary key identifier.
//  OwnerID            – user who created and owns the listing.
//  Title              – short display name.
//  Description        – free-text description.
//  Location           – human readable location string used for search.
//  PricePerNightCents – nightly price in cents.
//  MaxGuests          – maximum number of guests allowed.
//  Bedrooms           – number of bedrooms.
//  Bathrooms          – number of bathrooms.
//  Amenities          – comma separated amenity text, searched as-is.
//  IsActive           – soft-delete flag; false hides the listing.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Listing struct {
	ID                 uint64    `json:"id"`                    // listings.id
	OwnerID            uint64    `json:"owner_id"`              // listings.owner_id
	Title              string    `json:"title"`                 // listings.title
	Description        string    `json:"description"`           // listings.description
	Location           string    `json:"location"`              // listings.location
	PricePerNightCents uint32    `json:"price_per_night_cents"` // listings.price_per_night_cents
	MaxGuests          uint32    `json:"max_guests"`            // listings.max_guests
	Bedrooms           uint32    `json:"bedrooms"`              // listings.bedrooms
	Bathrooms          uint32    `json:"bathrooms"`             // listings.bathrooms
	Amenities          string    `json:"amenities"`             // listings.amenities
	IsActive           bool      `json:"is_active"`             // listings.is_active
	CreatedAt          time.Time `json:"created_at"`            // listings.created_at
	UpdatedAt          time.Time `json:"updated_at"`            // listings.updated_at
}
