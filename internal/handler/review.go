package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codexoft-ke/alx-travel-app-0x02/internal/booking"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/model"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/repository"
)

// ReviewHandler serves review CRUD.  Reads are public; mutations
// require the authenticated author.
type ReviewHandler struct {
	Reviews *repository.ReviewRepo
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(reviews *repository.ReviewRepo) *ReviewHandler {
	if reviews == nil {
		panic("nil repository passed to NewReviewHandler")
	}
	return &ReviewHandler{Reviews: reviews}
}

type reviewInput struct {
	ListingID uint64 `json:"listing_id"`
	Rating    uint8  `json:"rating"`
	Comment   string `json:"comment"`
}

// List handles GET /v1/reviews and GET /v1/listings/:id/reviews.
// The optional listing_id query parameter (or the path id) scopes the
// result to one listing.
func (h *ReviewHandler) List(c echo.Context) error {
	var listingID uint64
	if raw := c.Param("id"); raw != "" {
		id, ok := pathID(c)
		if !ok {
			return badRequest(c, "invalid listing id")
		}
		listingID = id
	} else if raw := c.QueryParam("listing_id"); raw != "" {
		id, err := parseUintParam(raw)
		if err != nil {
			return badRequest(c, "invalid listing_id")
		}
		listingID = id
	}
	items, err := h.Reviews.List(c.Request().Context(), listingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/reviews/:id.
func (h *ReviewHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid review id")
	}
	rv, err := h.Reviews.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": rv})
}

// Create handles POST /v1/reviews.  The authenticated user becomes
// the author; rating is a 1..5 scale.
func (h *ReviewHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var in reviewInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	if in.ListingID == 0 {
		return badRequest(c, "listing_id is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return badRequest(c, "rating must be between 1 and 5")
	}
	rv := &model.Review{
		ListingID: in.ListingID,
		UserID:    userID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}
	if err := h.Reviews.Create(c.Request().Context(), rv); err != nil {
		if errors.Is(err, booking.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create review"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": rv})
}

// Update handles PATCH /v1/reviews/:id.  Author only.
func (h *ReviewHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid review id")
	}
	ctx := c.Request().Context()
	rv, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	in := reviewInput{Rating: rv.Rating, Comment: rv.Comment}
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return badRequest(c, "rating must be between 1 and 5")
	}
	rv.Rating = in.Rating
	rv.Comment = in.Comment
	if err := h.Reviews.Update(ctx, rv, userID); err != nil {
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update review"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": rv})
}

// Delete handles DELETE /v1/reviews/:id.  Author only.
func (h *ReviewHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid review id")
	}
	if err := h.Reviews.Delete(c.Request().Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrReviewNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete review"})
	}
	return c.NoContent(http.StatusNoContent)
}
