package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/codexoft-ke/alx-travel-app-0x02/internal/booking"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/model"
)

// ListingRepo provides CRUD operations for listings.  Listings are
// soft-deleted: Deactivate flips is_active and every read that feeds
// search or availability excludes inactive rows.  All timestamp
// fields are assumed to be stored in UTC.
type ListingRepo struct {
	db *sql.DB
}

// NewListingRepo returns a new ListingRepo bound to the given database.
func NewListingRepo(db *sql.DB) *ListingRepo { return &ListingRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// that span several repositories.
func (r *ListingRepo) DB() *sql.DB { return r.db }

const listingColumns = `id, owner_id, title, description, location, price_per_night_cents,
       max_guests, bedrooms, bathrooms, amenities, is_active, created_at, updated_at`

func scanListing(row interface{ Scan(...any) error }) (*model.Listing, error) {
	var l model.Listing
	err := row.Scan(
		&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Location, &l.PricePerNightCents,
		&l.MaxGuests, &l.Bedrooms, &l.Bathrooms, &l.Amenities, &l.IsActive, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserts a new listing owned by l.OwnerID and populates the
// generated ID and timestamps on the provided struct.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) error {
	const q = `INSERT INTO listings
        (owner_id, title, description, location, price_per_night_cents, max_guests, bedrooms, bathrooms, amenities)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		l.OwnerID, l.Title, l.Description, l.Location, l.PricePerNightCents,
		l.MaxGuests, l.Bedrooms, l.Bathrooms, l.Amenities)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	// Query back the full row to populate defaults and timestamps.
	got, err := r.GetByID(ctx, l.ID)
	if err != nil {
		return err
	}
	*l = *got
	return nil
}

// GetByID returns a listing regardless of its active flag.  Booking
// lifecycle actions still need the owner of a deactivated listing.
// Returns booking.ErrListingNotFound when no row exists.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (*model.Listing, error) {
	const q = `SELECT ` + listingColumns + ` FROM listings WHERE id = ?`
	l, err := scanListing(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrListingNotFound
		}
		return nil, err
	}
	return l, nil
}

// GetActive returns a listing only when it exists and is active, so
// deactivated listings are indistinguishable from absent ones.
func (r *ListingRepo) GetActive(ctx context.Context, id uint64) (*model.Listing, error) {
	const q = `SELECT ` + listingColumns + ` FROM listings WHERE id = ? AND is_active = 1`
	l, err := scanListing(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrListingNotFound
		}
		return nil, err
	}
	return l, nil
}

// Update rewrites the mutable listing fields.  Only the owner may
// update; ErrForbidden is returned for anyone else and
// booking.ErrListingNotFound when the listing does not exist.
func (r *ListingRepo) Update(ctx context.Context, l *model.Listing, actorID uint64) error {
	if err := r.checkOwner(ctx, l.ID, actorID); err != nil {
		return err
	}
	const q = `UPDATE listings
        SET title = ?, description = ?, location = ?, price_per_night_cents = ?,
            max_guests = ?, bedrooms = ?, bathrooms = ?, amenities = ?
        WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q,
		l.Title, l.Description, l.Location, l.PricePerNightCents,
		l.MaxGuests, l.Bedrooms, l.Bathrooms, l.Amenities, l.ID)
	return err
}

// Deactivate soft-deletes a listing.  Historical bookings and reviews
// remain; the listing simply disappears from search and availability.
// Only the owner may deactivate.
func (r *ListingRepo) Deactivate(ctx context.Context, id, actorID uint64) error {
	if err := r.checkOwner(ctx, id, actorID); err != nil {
		return err
	}
	const q = `UPDATE listings SET is_active = 0 WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// checkOwner verifies existence and ownership before a mutation.
func (r *ListingRepo) checkOwner(ctx context.Context, id, actorID uint64) error {
	const q = `SELECT owner_id FROM listings WHERE id = ?`
	var ownerID uint64
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.ErrListingNotFound
		}
		return err
	}
	if ownerID != actorID {
		return ErrForbidden
	}
	return nil
}
