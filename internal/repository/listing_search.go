package repository

import (
	"context"
	"strings"

	"github.com/codexoft-ke/alx-travel-app-0x02/internal/model"
)

// ListingSearchQuery defines filters & pagination for searching listings.
// Prices are in cents.  Zero values mean "no filter".
type ListingSearchQuery struct {
	Text          string // matched against title, description, location and amenities
	Location      string
	MaxGuests     uint32
	Bedrooms      uint32
	Bathrooms     uint32
	MinPriceCents uint32
	MaxPriceCents uint32
	Order         string // "price", "title" or default newest-first
	Page          int
	PageSize      int
}

// Search returns active listings matching q plus the total match
// count for pagination.  Date availability is not applied here: the
// caller filters the page through the availability engine so the
// overlap predicate lives in one place.
func (r *ListingRepo) Search(ctx context.Context, q ListingSearchQuery) ([]model.Listing, int64, error) {
	where := []string{"is_active = 1"}
	args := []any{}

	if q.Text != "" {
		needle := "%" + strings.ToLower(q.Text) + "%"
		where = append(where, `(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ? OR LOWER(amenities) LIKE ?)`)
		args = append(args, needle, needle, needle, needle)
	}
	if q.Location != "" {
		where = append(where, "LOWER(location) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Location)+"%")
	}
	if q.MaxGuests > 0 {
		where = append(where, "max_guests >= ?")
		args = append(args, q.MaxGuests)
	}
	if q.Bedrooms > 0 {
		where = append(where, "bedrooms >= ?")
		args = append(args, q.Bedrooms)
	}
	if q.Bathrooms > 0 {
		where = append(where, "bathrooms >= ?")
		args = append(args, q.Bathrooms)
	}
	if q.MinPriceCents > 0 {
		where = append(where, "price_per_night_cents >= ?")
		args = append(args, q.MinPriceCents)
	}
	if q.MaxPriceCents > 0 {
		where = append(where, "price_per_night_cents <= ?")
		args = append(args, q.MaxPriceCents)
	}

	cond := strings.Join(where, " AND ")

	var total int64
	countSQL := `SELECT COUNT(*) FROM listings WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	var order string
	switch strings.ToLower(q.Order) {
	case "price":
		order = "price_per_night_cents ASC, id ASC"
	case "title":
		order = "title ASC, id ASC"
	default:
		order = "created_at DESC, id DESC"
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	dataSQL := `SELECT ` + listingColumns + `
        FROM listings
        WHERE ` + cond + `
        ORDER BY ` + order + `
        LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), size, (page-1)*size)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Listing, 0, size)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
