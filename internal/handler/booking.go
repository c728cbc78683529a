package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codexoft-ke/alx-travel-app-0x02/internal/booking"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/model"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/queue"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/repository"
)

// BookingHandler exposes the booking lifecycle over HTTP.  All
// endpoints require an authenticated user; the lifecycle rules
// themselves live in booking.Service, this layer only binds requests
// and maps domain errors to status codes.
type BookingHandler struct {
	Svc      *booking.Service
	Bookings *repository.BookingRepo
	Listings *repository.ListingRepo
}

// NewBookingHandler constructs a BookingHandler.  All dependencies
// must be non-nil.
func NewBookingHandler(svc *booking.Service, bookings *repository.BookingRepo, listings *repository.ListingRepo) *BookingHandler {
	if svc == nil || bookings == nil || listings == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Svc: svc, Bookings: bookings, Listings: listings}
}

type createBookingReq struct {
	ListingID    uint64 `json:"listing_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

// bookingError maps domain errors to HTTP responses.  Invalid
// transitions surface the current status in the message; conflicts
// identify the constraint so the caller can retry with other dates.
func bookingError(c echo.Context, err error) error {
	var it *booking.InvalidTransitionError
	switch {
	case errors.Is(err, booking.ErrInvalidDateRange):
		return badRequest(c, err.Error())
	case errors.Is(err, booking.ErrListingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, booking.ErrDateConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.As(err, &it):
		return badRequest(c, it.Error())
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// Create handles POST /v1/bookings.  Availability is re-validated
// against the live booking set inside the creation transaction, not
// against whatever search the client ran earlier.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.ListingID == 0 {
		return badRequest(c, "listing_id is required")
	}
	if req.CheckInDate == "" || req.CheckOutDate == "" {
		return badRequest(c, "both check_in_date and check_out_date are required")
	}
	checkIn, err := time.Parse(dateLayout, req.CheckInDate)
	if err != nil {
		return badRequest(c, "invalid check_in_date, expected YYYY-MM-DD")
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOutDate)
	if err != nil {
		return badRequest(c, "invalid check_out_date, expected YYYY-MM-DD")
	}
	b, err := h.Svc.Create(c.Request().Context(), req.ListingID, userID, checkIn.UTC(), checkOut.UTC())
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": b})
}

// List handles GET /v1/bookings.  It returns the current user's
// bookings newest first, optionally narrowed by ?status= and
// ?listing_id=.
func (h *BookingHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	status := model.BookingStatus(c.QueryParam("status"))
	if status != "" && !status.Valid() {
		return badRequest(c, "unknown status filter")
	}
	var listingID uint64
	if raw := c.QueryParam("listing_id"); raw != "" {
		if listingID, err = parseUintParam(raw); err != nil {
			return badRequest(c, "invalid listing_id")
		}
	}
	items, err := h.Bookings.ListByUser(c.Request().Context(), userID, status, listingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/bookings/:id.  Visible to the booking's guest
// and to the listing owner; everyone else sees 404 or 403.
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid booking id")
	}
	detail, ownerID, err := h.Bookings.GetDetail(c.Request().Context(), id)
	if err != nil {
		return bookingError(c, err)
	}
	if detail.UserID != userID && ownerID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": detail})
}

// Confirm handles POST /v1/bookings/:id/confirm.  Only the listing
// owner may confirm, and only from PENDING.  On success a
// booking.confirmed event is published best-effort; a broker outage
// never fails the request.
func (h *BookingHandler) Confirm(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid booking id")
	}
	b, err := h.Svc.Confirm(c.Request().Context(), id, userID)
	if err != nil {
		return bookingError(c, err)
	}
	go h.publishConfirmed(b)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "booking confirmed successfully",
		"item":    b,
	})
}

// Cancel handles POST /v1/bookings/:id/cancel.  Allowed to the guest
// or the listing owner, from PENDING or CONFIRMED.  Cancellation is
// terminal and immediately frees the dates.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid booking id")
	}
	b, err := h.Svc.Cancel(c.Request().Context(), id, userID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "booking cancelled successfully",
		"item":    b,
	})
}

func (h *BookingHandler) publishConfirmed(b *model.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ev := queue.BookingConfirmedEvent{
		BookingID:       b.ID,
		Reference:       b.Reference,
		ListingID:       b.ListingID,
		UserID:          b.UserID,
		CheckInDate:     b.CheckInDate.Format(dateLayout),
		CheckOutDate:    b.CheckOutDate.Format(dateLayout),
		TotalPriceCents: b.TotalPriceCents,
		ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if lst, err := h.Listings.GetByID(ctx, b.ListingID); err == nil {
		ev.ListingTitle = lst.Title
		ev.ListingLocation = lst.Location
	}
	if err := queue.PublishBookingConfirmed(ctx, ev); err != nil {
		log.Printf("booking %d: publish confirmed event failed: %v", b.ID, err)
	}
}
