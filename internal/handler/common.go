package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// dateLayout is the wire format for check_in_date / check_out_date.
const dateLayout = "2006-01-02"

// getUserID extracts the user_id placed in context by the JWT
// middleware and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// parseUintParam parses a numeric query parameter value.
func parseUintParam(raw string) (uint64, error) {
	return strconv.ParseUint(raw, 10, 64)
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id != 0
}

// parseDateParam parses an optional YYYY-MM-DD query parameter.
// Absence yields (nil, ""); a malformed value yields an error message
// so validation failures are rejected before they reach the
// availability engine.
func parseDateParam(c echo.Context, name string) (*time.Time, string) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, ""
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, "invalid " + name + ", expected YYYY-MM-DD"
	}
	t = t.UTC()
	return &t, ""
}

// badRequest is a tiny shorthand for the common error response.
func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
