package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/codexoft-ke/alx-travel-app-0x02/internal/booking"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/config"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/database"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/handler"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/middleware"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/queue"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/repository"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/router"
)

func main() {
	_ = godotenv.Load() // best-effort; real deployments set env directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	listings := repository.NewListingRepo(db)
	bookings := repository.NewBookingRepo(db)
	reviews := repository.NewReviewRepo(db)

	// Booking core: availability engine + lifecycle service over the
	// SQL stores.
	engine := booking.NewEngine(bookings)
	svc := booking.NewService(listings, bookings)

	// Handlers
	authH := handler.NewAuthHandler(cfg, users, tokens)
	listingH := handler.NewListingHandler(listings, engine)
	bookingH := handler.NewBookingHandler(svc, bookings, listings)
	reviewH := handler.NewReviewHandler(reviews)

	e := echo.New()

	// Redis-backed rate limiting and response caching for public
	// reads.  Both degrade to pass-through when Redis is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, listingH, reviewH, cacheMW)
	router.RegisterProtected(e, cfg.JWTSecret, listingH, bookingH, reviewH)

	// Background consumer logging confirmed bookings; reconnects on
	// broker failure.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
