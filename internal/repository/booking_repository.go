package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/codexoft-ke/alx-travel-app-0x02/internal/booking"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/model"
)

// BookingRepo persists bookings and answers the overlap queries the
// availability engine runs.  It implements booking.BookingStore.  The
// blocking-status predicate (status IN PENDING, CONFIRMED) and the
// half-open interval comparison appear in exactly three queries below
// and nowhere else.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, reference, listing_id, user_id, check_in_date, check_out_date,
       total_price_cents, status, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	var status string
	err := row.Scan(
		&b.ID, &b.Reference, &b.ListingID, &b.UserID, &b.CheckInDate, &b.CheckOutDate,
		&b.TotalPriceCents, &status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Status = model.BookingStatus(status)
	return &b, nil
}

// BlockedListingIDs returns listing IDs holding at least one pending
// or confirmed booking that overlaps [checkIn, checkOut).  Runs as a
// plain snapshot read; callers treat the result as advisory.
func (r *BookingRepo) BlockedListingIDs(ctx context.Context, checkIn, checkOut time.Time) (map[uint64]bool, error) {
	const q = `SELECT DISTINCT listing_id
               FROM bookings
               WHERE status IN ('PENDING','CONFIRMED')
                 AND check_in_date < ? AND check_out_date > ?`
	rows, err := r.db.QueryContext(ctx, q, checkOut, checkIn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	blocked := make(map[uint64]bool)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		blocked[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return blocked, nil
}

// HasBlockingOverlap reports whether the listing has a pending or
// confirmed booking overlapping [checkIn, checkOut).
func (r *BookingRepo) HasBlockingOverlap(ctx context.Context, listingID uint64, checkIn, checkOut time.Time) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, overlapCountSQL, listingID, checkOut, checkIn).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

const overlapCountSQL = `SELECT COUNT(*)
    FROM bookings
    WHERE listing_id = ?
      AND status IN ('PENDING','CONFIRMED')
      AND check_in_date < ? AND check_out_date > ?`

// CreateIfAvailable inserts b after re-checking the overlap predicate
// inside a transaction.  The listing row is locked with
// SELECT ... FOR UPDATE first, so concurrent creates for the same
// listing serialize on the row lock before either counts conflicts;
// two overlapping requests can never both observe zero.
func (r *BookingRepo) CreateIfAvailable(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the listing row; also re-verifies it is still active.
	const lockQ = `SELECT id FROM listings WHERE id = ? AND is_active = 1 FOR UPDATE`
	var lockedID uint64
	if err := tx.QueryRowContext(ctx, lockQ, b.ListingID).Scan(&lockedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.ErrListingNotFound
		}
		return err
	}

	var conflicts int
	if err := tx.QueryRowContext(ctx, overlapCountSQL, b.ListingID, b.CheckOutDate, b.CheckInDate).Scan(&conflicts); err != nil {
		return err
	}
	if conflicts > 0 {
		return booking.ErrDateConflict
	}

	const ins = `INSERT INTO bookings
        (reference, listing_id, user_id, check_in_date, check_out_date, total_price_cents, status)
        VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins,
		b.Reference, b.ListingID, b.UserID, b.CheckInDate, b.CheckOutDate,
		b.TotalPriceCents, string(b.Status))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	// Query back the full row to populate timestamps and defaults.
	const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	got, err := scanBooking(tx.QueryRowContext(ctx, sel, b.ID))
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	*b = *got
	return nil
}

// GetByID returns a booking or booking.ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// UpdateStatus transitions booking id from one status to another.
// The WHERE guard makes the write conditional on the row still
// holding `from`; zero affected rows means a concurrent transition
// won and booking.ErrStatusChanged is returned.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, from, to model.BookingStatus) error {
	const q = `UPDATE bookings SET status = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, string(to), id, string(from))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return booking.ErrStatusChanged
	}
	return nil
}

// BookingDetail is a booking joined with display fields of its
// listing, returned by the list and detail endpoints.
type BookingDetail struct {
	model.Booking
	ListingTitle    string `json:"listing_title"`
	ListingLocation string `json:"listing_location"`
}

// ListByUser returns all bookings created by the given user, newest
// first, optionally narrowed by status and listing.  When no bookings
// exist an empty slice is returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64, status model.BookingStatus, listingID uint64) ([]BookingDetail, error) {
	q := `SELECT b.id, b.reference, b.listing_id, b.user_id, b.check_in_date, b.check_out_date,
                 b.total_price_cents, b.status, b.created_at, b.updated_at,
                 l.title, l.location
          FROM bookings b
          JOIN listings l ON l.id = b.listing_id
          WHERE b.user_id = ?`
	args := []any{userID}
	if status != "" {
		q += " AND b.status = ?"
		args = append(args, string(status))
	}
	if listingID != 0 {
		q += " AND b.listing_id = ?"
		args = append(args, listingID)
	}
	q += " ORDER BY b.created_at DESC, b.id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		var st string
		if err := rows.Scan(
			&d.ID, &d.Reference, &d.ListingID, &d.UserID, &d.CheckInDate, &d.CheckOutDate,
			&d.TotalPriceCents, &st, &d.CreatedAt, &d.UpdatedAt,
			&d.ListingTitle, &d.ListingLocation,
		); err != nil {
			return nil, err
		}
		d.Status = model.BookingStatus(st)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDetail returns a single booking with listing display fields and
// the listing's owner, so handlers can enforce that only the guest or
// the host may view it.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (*BookingDetail, uint64, error) {
	const q = `SELECT b.id, b.reference, b.listing_id, b.user_id, b.check_in_date, b.check_out_date,
                      b.total_price_cents, b.status, b.created_at, b.updated_at,
                      l.title, l.location, l.owner_id
               FROM bookings b
               JOIN listings l ON l.id = b.listing_id
               WHERE b.id = ?`
	var d BookingDetail
	var st string
	var ownerID uint64
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.Reference, &d.ListingID, &d.UserID, &d.CheckInDate, &d.CheckOutDate,
		&d.TotalPriceCents, &st, &d.CreatedAt, &d.UpdatedAt,
		&d.ListingTitle, &d.ListingLocation, &ownerID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, booking.ErrBookingNotFound
		}
		return nil, 0, err
	}
	d.Status = model.BookingStatus(st)
	return &d, ownerID, nil
}
