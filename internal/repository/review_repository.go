package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/codexoft-ke/alx-travel-app-0x02/internal/booking"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/model"
)

// ReviewRepo provides CRUD operations for reviews.  Reviews reference
// a listing and an author; they carry no cross-record invariants and
// need no locking beyond single-row atomicity.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewColumns = `id, listing_id, user_id, rating, comment, created_at, updated_at`

func scanReview(row interface{ Scan(...any) error }) (*model.Review, error) {
	var rv model.Review
	err := row.Scan(&rv.ID, &rv.ListingID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// Create inserts a review for an active listing and populates the
// generated ID and timestamps.  Returns booking.ErrListingNotFound
// when the listing does not exist or is inactive.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	const check = `SELECT id FROM listings WHERE id = ? AND is_active = 1`
	var id uint64
	if err := r.db.QueryRowContext(ctx, check, rv.ListingID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.ErrListingNotFound
		}
		return err
	}
	const q = `INSERT INTO reviews (listing_id, user_id, rating, comment) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rv.ListingID, rv.UserID, rv.Rating, rv.Comment)
	if err != nil {
		return err
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(newID)
	const sel = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`
	got, err := scanReview(r.db.QueryRowContext(ctx, sel, rv.ID))
	if err != nil {
		return err
	}
	*rv = *got
	return nil
}

// GetByID returns a review or ErrReviewNotFound.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`
	rv, err := scanReview(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return rv, nil
}

// List returns reviews newest first, optionally scoped to a listing
// via the listing_id query parameter.
func (r *ReviewRepo) List(ctx context.Context, listingID uint64) ([]model.Review, error) {
	q := `SELECT ` + reviewColumns + ` FROM reviews`
	args := []any{}
	if listingID != 0 {
		q += " WHERE listing_id = ?"
		args = append(args, listingID)
	}
	q += " ORDER BY created_at DESC, id DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the rating and comment.  Only the author may
// update; ErrForbidden otherwise, ErrReviewNotFound when absent.
func (r *ReviewRepo) Update(ctx context.Context, rv *model.Review, actorID uint64) error {
	if err := r.checkAuthor(ctx, rv.ID, actorID); err != nil {
		return err
	}
	const q = `UPDATE reviews SET rating = ?, comment = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, rv.Rating, rv.Comment, rv.ID)
	return err
}

// Delete removes a review.  Only the author may delete.
func (r *ReviewRepo) Delete(ctx context.Context, id, actorID uint64) error {
	if err := r.checkAuthor(ctx, id, actorID); err != nil {
		return err
	}
	const q = `DELETE FROM reviews WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *ReviewRepo) checkAuthor(ctx context.Context, id, actorID uint64) error {
	const q = `SELECT user_id FROM reviews WHERE id = ?`
	var authorID uint64
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&authorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrReviewNotFound
		}
		return err
	}
	if authorID != actorID {
		return ErrForbidden
	}
	return nil
}
