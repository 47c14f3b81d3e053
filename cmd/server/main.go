package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/sacmovies/campus-booking/internal/config"
	"github.com/sacmovies/campus-booking/internal/database"
	"github.com/sacmovies/campus-booking/internal/handler"
	"github.com/sacmovies/campus-booking/internal/middleware"
	"github.com/sacmovies/campus-booking/internal/queue"
	"github.com/sacmovies/campus-booking/internal/repository"
	"github.com/sacmovies/campus-booking/internal/router"
)

func main() {
	// .env is optional; deployments may set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	movieRepo := repository.NewMovieRepo(db)
	showRepo := repository.NewShowRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	authH := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	catalogH := handler.NewCatalogHandler(movieRepo, showRepo)
	seatH := handler.NewSeatHandler(showRepo, seatRepo)
	bookingH := handler.NewBookingHandler(userRepo, showRepo, seatRepo, bookingRepo, movieRepo)
	adminH := handler.NewAdminHandler(movieRepo, showRepo, seatRepo, bookingRepo, userRepo)

	e := echo.New()

	// Redis-backed rate limiting and response caching degrade to no-ops
	// when no client could be created.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting and caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, catalogH, seatH, cache)
	router.RegisterStudent(e, bookingH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// Background consumer appends confirmed bookings to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
