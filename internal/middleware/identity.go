package middleware

// identity.go defines helper functions shared across middleware files.
// It provides the user identifier extraction used by rate-limit key
// strategies. When no user is authenticated, "anon" is returned so
// unauthenticated traffic shares one bucket per IP/route.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID extracts the user identifier placed in context by the
// JWTAuth middleware. JWT numeric claims decode as float64, so the
// value is normalised to its decimal string form.
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return fmt.Sprintf("%.0f", v)
	case uint64:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	}
	return "anon"
}
