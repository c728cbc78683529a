package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Welcome handles GET /v1/welcome.  It returns static API metadata so
// clients and humans can discover the main resource roots.
func Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Welcome to the ALX Travel App API",
		"version": "1.0.0",
		"endpoints": echo.Map{
			"listings": "/v1/listings",
			"bookings": "/v1/bookings",
			"reviews":  "/v1/reviews",
			"health":   "/healthz",
		},
	})
}
