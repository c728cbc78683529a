package booking

import (
	"context"
	"time"

	"github.com/codexoft-ke/alx-travel-app-0x02/internal/model"
)

// ListingStore provides the listing reads the booking core depends
// on.  The SQL implementation lives in the repository package.
type ListingStore interface {
	// GetActive returns the listing when it exists and is active.
	// It returns ErrListingNotFound otherwise; deactivated listings
	// are indistinguishable from absent ones.
	GetActive(ctx context.Context, id uint64) (*model.Listing, error)

	// GetByID returns the listing regardless of its active flag.
	// Lifecycle actions on existing bookings still need the owner of
	// a listing that was deactivated after the booking was made.
	GetByID(ctx context.Context, id uint64) (*model.Listing, error)
}

// BookingStore persists bookings and answers overlap queries.  All
// overlap predicates use the half-open convention: a booking blocks
// [check_in, check_out) and two intervals conflict when
// a.check_in < b.check_out AND a.check_out > b.check_in, restricted
// to statuses for which model.BookingStatus.Blocking is true.
type BookingStore interface {
	// BlockedListingIDs returns the set of listing IDs that have at
	// least one blocking booking overlapping [checkIn, checkOut).
	// This is a snapshot read; results are advisory until re-checked
	// by CreateIfAvailable.
	BlockedListingIDs(ctx context.Context, checkIn, checkOut time.Time) (map[uint64]bool, error)

	// HasBlockingOverlap reports whether the listing has a blocking
	// booking overlapping [checkIn, checkOut).
	HasBlockingOverlap(ctx context.Context, listingID uint64, checkIn, checkOut time.Time) (bool, error)

	// CreateIfAvailable atomically re-checks the overlap predicate
	// and inserts b.  Implementations must serialize concurrent calls
	// for the same listing (row lock or equivalent) so two creates
	// cannot both observe "no conflict".  Returns ErrDateConflict
	// when the interval is taken and ErrListingNotFound when the
	// listing vanished or was deactivated since validation.
	CreateIfAvailable(ctx context.Context, b *model.Booking) error

	// GetByID returns a booking or ErrBookingNotFound.
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)

	// UpdateStatus transitions booking id from one status to another,
	// guarded so the write only lands if the row still holds `from`.
	// Returns ErrStatusChanged when the guard fails.
	UpdateStatus(ctx context.Context, id uint64, from, to model.BookingStatus) error
}
