package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codexoft-ke/alx-travel-app-0x02/internal/booking"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/model"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/repository"
)

// ListingHandler serves listing search and CRUD.  Search results that
// carry a date range are passed through the availability engine, so
// the listings returned are free for those dates as of the query; the
// authoritative check still happens at booking time.
type ListingHandler struct {
	Listings *repository.ListingRepo
	Engine   *booking.Engine
}

// NewListingHandler constructs a ListingHandler.  Both dependencies
// must be non-nil.
func NewListingHandler(listings *repository.ListingRepo, engine *booking.Engine) *ListingHandler {
	if listings == nil || engine == nil {
		panic("nil dependency passed to NewListingHandler")
	}
	return &ListingHandler{Listings: listings, Engine: engine}
}

type listingInput struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Location           string `json:"location"`
	PricePerNightCents uint32 `json:"price_per_night_cents"`
	MaxGuests          uint32 `json:"max_guests"`
	Bedrooms           uint32 `json:"bedrooms"`
	Bathrooms          uint32 `json:"bathrooms"`
	Amenities          string `json:"amenities"`
}

func (in *listingInput) validate() string {
	if in.Title == "" {
		return "title is required"
	}
	if in.Location == "" {
		return "location is required"
	}
	if in.PricePerNightCents == 0 {
		return "price_per_night_cents must be positive"
	}
	if in.MaxGuests == 0 {
		return "max_guests must be positive"
	}
	return ""
}

func searchQueryFrom(c echo.Context) repository.ListingSearchQuery {
	uintParam := func(name string) uint32 {
		n, _ := strconv.ParseUint(c.QueryParam(name), 10, 32)
		return uint32(n)
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("page_size"))
	return repository.ListingSearchQuery{
		Text:          c.QueryParam("q"),
		Location:      c.QueryParam("location"),
		MaxGuests:     uintParam("max_guests"),
		Bedrooms:      uintParam("bedrooms"),
		Bathrooms:     uintParam("bathrooms"),
		MinPriceCents: uintParam("min_price"),
		MaxPriceCents: uintParam("max_price"),
		Order:         c.QueryParam("order"),
		Page:          page,
		PageSize:      size,
	}
}

// List handles GET /v1/listings.  All filters are optional; when both
// check_in_date and check_out_date are present the result page is
// availability-filtered for that range.  A single date is ignored,
// matching the original search contract, but a malformed date is
// rejected before it can reach the engine.
func (h *ListingHandler) List(c echo.Context) error {
	checkIn, checkOut, errMsg := dateRange(c, false)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	return h.search(c, checkIn, checkOut)
}

// Available handles GET /v1/listings/available, the explicit "what is
// free for these dates" action.  Unlike List, both dates are
// mandatory here.
func (h *ListingHandler) Available(c echo.Context) error {
	checkIn, checkOut, errMsg := dateRange(c, true)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	return h.search(c, checkIn, checkOut)
}

// dateRange parses the check_in_date/check_out_date pair.  When
// required is false a lone date simply disables the filter; a
// malformed value or a reversed range is always an error.
func dateRange(c echo.Context, required bool) (checkIn, checkOut *time.Time, errMsg string) {
	checkIn, errMsg = parseDateParam(c, "check_in_date")
	if errMsg != "" {
		return nil, nil, errMsg
	}
	checkOut, errMsg = parseDateParam(c, "check_out_date")
	if errMsg != "" {
		return nil, nil, errMsg
	}
	if required && (checkIn == nil || checkOut == nil) {
		return nil, nil, "both check_in_date and check_out_date are required"
	}
	if checkIn == nil || checkOut == nil {
		return nil, nil, ""
	}
	if !checkIn.Before(*checkOut) {
		return nil, nil, booking.ErrInvalidDateRange.Error()
	}
	return checkIn, checkOut, ""
}

func (h *ListingHandler) search(c echo.Context, checkIn, checkOut *time.Time) error {
	ctx := c.Request().Context()
	items, total, err := h.Listings.Search(ctx, searchQueryFrom(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	items, err = h.Engine.FilterAvailable(ctx, items, checkIn, checkOut)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability check failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
		"total": total,
	})
}

// Get handles GET /v1/listings/:id.  Inactive listings respond 404.
func (h *ListingHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid listing id")
	}
	lst, err := h.Listings.GetActive(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": lst})
}

// Create handles POST /v1/listings.  The authenticated user becomes
// the owner.
func (h *ListingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var in listingInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	if msg := in.validate(); msg != "" {
		return badRequest(c, msg)
	}
	lst := &model.Listing{
		OwnerID:            userID,
		Title:              in.Title,
		Description:        in.Description,
		Location:           in.Location,
		PricePerNightCents: in.PricePerNightCents,
		MaxGuests:          in.MaxGuests,
		Bedrooms:           in.Bedrooms,
		Bathrooms:          in.Bathrooms,
		Amenities:          in.Amenities,
	}
	if err := h.Listings.Create(c.Request().Context(), lst); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create listing"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": lst})
}

// Update handles PATCH /v1/listings/:id.  Only the owner may update;
// omitted fields keep their current value.
func (h *ListingHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid listing id")
	}
	ctx := c.Request().Context()
	lst, err := h.Listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, booking.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	in := listingInput{
		Title:              lst.Title,
		Description:        lst.Description,
		Location:           lst.Location,
		PricePerNightCents: lst.PricePerNightCents,
		MaxGuests:          lst.MaxGuests,
		Bedrooms:           lst.Bedrooms,
		Bathrooms:          lst.Bathrooms,
		Amenities:          lst.Amenities,
	}
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	if msg := in.validate(); msg != "" {
		return badRequest(c, msg)
	}
	lst.Title = in.Title
	lst.Description = in.Description
	lst.Location = in.Location
	lst.PricePerNightCents = in.PricePerNightCents
	lst.MaxGuests = in.MaxGuests
	lst.Bedrooms = in.Bedrooms
	lst.Bathrooms = in.Bathrooms
	lst.Amenities = in.Amenities
	if err := h.Listings.Update(ctx, lst, userID); err != nil {
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update listing"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": lst})
}

// Delete handles DELETE /v1/listings/:id.  Listings are never hard
// deleted; the row is deactivated and disappears from search and
// availability while existing bookings stay intact.
func (h *ListingHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid listing id")
	}
	if err := h.Listings.Deactivate(c.Request().Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, booking.ErrListingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete listing"})
	}
	return c.NoContent(http.StatusNoContent)
}
