package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"pacearena-api/clock"
	"pacearena-api/config"
	"pacearena-api/database"
	"pacearena-api/jobs"
	"pacearena-api/messaging"
	"pacearena-api/middleware"
	"pacearena-api/routes"
	"pacearena-api/services"
	"pacearena-api/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	shutdownTracer, err := telemetry.InitTracer(context.Background(), "pacearena-api", cfg.OTLPEndpoint)
	if err != nil {
		log.Printf("Warning: tracing disabled: %v", err)
	}

	db, err := database.Initialize(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	clk := clock.NewSystem()
	if cfg.SeedData {
		if err := database.SeedData(db, clk.Now()); err != nil {
			log.Printf("Warning: Failed to seed database: %v", err)
		}
	}

	publisher := messaging.Connect(cfg.AMQPURL, cfg.AMQPExchange)
	defer publisher.Close()

	appCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Tracing())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(appCtx, cfg.RateLimitPerMinute, cfg.RateLimitBurst))
	router.Use(middleware.ValidateJSON())
	router.Use(middleware.ErrorHandler())

	eventService := routes.SetupRoutes(router, routes.Dependencies{
		DB:           db,
		Config:       cfg,
		EmailService: services.NewEmailService(cfg),
		Publisher:    publisher,
		Clock:        clk,
	})

	deadlineJob := jobs.NewRegistrationDeadlineJob(eventService, cfg.DeadlineSchedule)
	if err := deadlineJob.Start(); err != nil {
		log.Fatal("Failed to start registration deadline job:", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting PaceArena API server on port %s", cfg.Port)
		log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-appCtx.Done()
	stop()
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	deadlineJob.Stop()
	if err := shutdownTracer(ctx); err != nil {
		log.Printf("Warning: tracer shutdown: %v", err)
	}
}
