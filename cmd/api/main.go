package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"whenavailable/internal/adapter/handler"
	"whenavailable/internal/adapter/middleware"
	"whenavailable/internal/adapter/notifier"
	"whenavailable/internal/adapter/repository/redisrepo"
	"whenavailable/internal/core/services"
	"whenavailable/internal/platform/config"
	"whenavailable/internal/platform/redisconn"
)

func setupRouter(slotHandler *handler.SlotHandler, bookingHandler *handler.BookingHandler, limiter *redisrepo.RateLimiter) *httprouter.Router {
	router := httprouter.New()

	router.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		fmt.Fprint(w, "200")
	})

	createLimit := middleware.RateLimit(limiter, "create")
	bookLimit := middleware.RateLimit(limiter, "book")

	router.POST("/slots", createLimit(slotHandler.CreateSlot))
	router.GET("/slots/:id", slotHandler.GetSlot)
	router.POST("/slots/:id/book", bookLimit(bookingHandler.BookSlot))

	router.GET("/bookings/:bookingId", bookingHandler.GetBooking)
	router.PUT("/bookings/:bookingId/reschedule", bookLimit(bookingHandler.RescheduleBooking))
	router.DELETE("/bookings/:bookingId/cancel", bookLimit(bookingHandler.CancelBooking))

	return router
}

func main() {
	cfg := config.Load()

	redisClient, err := redisconn.New(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis after retries: %v", err)
	}
	defer redisClient.Close()

	slotRepo := redisrepo.NewSlotRepository(redisClient)
	bookingRepo := redisrepo.NewBookingRepository(redisClient)
	limiter := redisrepo.NewRateLimiter(redisClient, cfg.RateLimitMax, cfg.RateLimitWindow)

	mailer := notifier.NewEmailNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)

	slotService := services.NewSlotService(slotRepo)
	bookingService := services.NewBookingService(slotRepo, bookingRepo, slotService, mailer)

	slotHandler := handler.NewSlotHandler(slotService, cfg.BaseURL)
	bookingHandler := handler.NewBookingHandler(bookingService)

	router := setupRouter(slotHandler, bookingHandler, limiter)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      middleware.LogRequests(middleware.SecurityHeaders(corsHandler)),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
