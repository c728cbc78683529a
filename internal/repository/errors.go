// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. Domain
// errors for the booking core itself (conflicts, invalid transitions)
// live in the booking package; the sentinels here cover the plain
// resource-CRUD paths.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrListingNotFound is returned when a listing does not exist or
// has been deactivated. Handlers should translate this into an
// HTTP 404 response.
var ErrListingNotFound = errors.New("listing not found")

// ErrReviewNotFound is returned when a review does not exist.
var ErrReviewNotFound = errors.New("review not found")
