package model

import "time"

// Review is a guest's rating and commentary on a listing.  Reviews do
// not participate in availability; they share the listing reference
// pattern with bookings and are scoped by listing in queries.
//
// Fields:
//  ID        – primary key identifier.
//  ListingID – listing being reviewed.
//  UserID    – author of the review.
//  Rating    – integer score from 1 to 5 inclusive.
//  Comment   – free-text body.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Review struct {
	ID        uint64    `json:"id"`         // reviews.id
	ListingID uint64    `json:"listing_id"` // reviews.listing_id
	UserID    uint64    `json:"user_id"`    // reviews.user_id
	Rating    uint8     `json:"rating"`     // reviews.rating
	Comment   string    `json:"comment"`    // reviews.comment
	CreatedAt time.Time `json:"created_at"` // reviews.created_at
	UpdatedAt time.Time `json:"updated_at"` // reviews.updated_at
}
