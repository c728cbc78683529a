package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/codexoft-ke/alx-travel-app-0x02/internal/handler"    // handlers that implement the endpoints
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/middleware" // JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance: the health check and the welcome
// metadata endpoint.
func RegisterRoutes(e *echo.Echo) {
	// The health endpoint is used by load balancers and monitoring
	// systems to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
	e.GET("/v1/welcome", handler.Welcome)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while the protected /v1/me endpoint carries the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; refresh-access issues a new
	// access token without rotating.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts a refresh_token body or a bearer header and does
	// not require the JWT middleware.
	g.POST("/logout", a.Logout)
	e.POST("/v1/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("HOST", "GUEST"))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints:
// listing search (optionally availability-filtered), the explicit
// available-listings action, listing details and review reads.  The
// cacheMW middleware, when non-nil, caches these advisory reads; a
// cached search result is always re-validated at booking time.
func RegisterPublic(e *echo.Echo, l *handler.ListingHandler, r *handler.ReviewHandler, cacheMW echo.MiddlewareFunc) {
	mws := []echo.MiddlewareFunc{}
	if cacheMW != nil {
		mws = append(mws, cacheMW)
	}
	e.GET("/v1/listings", l.List, mws...)
	e.GET("/v1/listings/available", l.Available, mws...)
	e.GET("/v1/listings/:id", l.Get, mws...)
	e.GET("/v1/listings/:id/reviews", r.List, mws...)
	e.GET("/v1/reviews", r.List, mws...)
	e.GET("/v1/reviews/:id", r.Get, mws...)
}

// RegisterProtected registers every endpoint that mutates listings,
// bookings or reviews.  All of them require a valid access token; the
// finer ownership rules (listing owner, booking guest, review author)
// are enforced in the handlers and the booking service.
func RegisterProtected(e *echo.Echo, jwtSecret string, l *handler.ListingHandler, b *handler.BookingHandler, r *handler.ReviewHandler) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("HOST", "GUEST"))

	g.POST("/listings", l.Create)
	g.PATCH("/listings/:id", l.Update)
	g.DELETE("/listings/:id", l.Delete)

	g.POST("/bookings", b.Create)
	g.GET("/bookings", b.List)
	g.GET("/bookings/:id", b.Get)
	g.POST("/bookings/:id/confirm", b.Confirm)
	g.POST("/bookings/:id/cancel", b.Cancel)

	g.POST("/reviews", r.Create)
	g.PATCH("/reviews/:id", r.Update)
	g.DELETE("/reviews/:id", r.Delete)
}
