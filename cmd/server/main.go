package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"checkinhub/internal/attendee/store/attendee"
	"checkinhub/internal/attendee/store/pet"
	"checkinhub/internal/audit"
	"checkinhub/internal/jwttoken"
	"checkinhub/internal/platform/config"
	"checkinhub/internal/platform/httpserver"
	"checkinhub/internal/platform/logger"
	"checkinhub/internal/platform/middleware"
	"checkinhub/internal/platform/postgres"
	platformredis "checkinhub/internal/platform/redis"
	synchandler "checkinhub/internal/sync/handler"
	syncmetrics "checkinhub/internal/sync/metrics"
	syncservice "checkinhub/internal/sync/service"
	"checkinhub/internal/synclock"
	"checkinhub/internal/ticketsource"
	httptransport "checkinhub/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	var health []httptransport.HealthChecker

	var (
		attendeeStore syncservice.AttendeeStore
		petStore      syncservice.PetStore
		auditStore    audit.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			log.Error("failed to apply schema", "error", err)
			os.Exit(1)
		}
		attendeeStore = attendee.NewPostgres(db)
		petStore = pet.NewPostgres(db)
		auditStore = audit.NewPostgresStore(db)
		health = append(health, db.Ping)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		attendeeStore = attendee.NewInMemory()
		petStore = pet.NewInMemory()
		auditStore = audit.NewInMemoryStore()
	}

	var publisher *audit.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		var err error
		publisher, err = audit.NewPublisher(cfg.KafkaBrokers, cfg.AuditTopic, log)
		if err != nil {
			log.Error("failed to connect to kafka", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
	}
	recorder := audit.NewRecorder(auditStore, publisher, log)

	syncOpts := []syncservice.Option{
		syncservice.WithMetrics(syncmetrics.New()),
		syncservice.WithRecorder(recorder),
		syncservice.WithPreservePetStatus(cfg.PreservePetStatusByName),
	}
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		syncOpts = append(syncOpts, syncservice.WithLocker(synclock.NewRedis(redisClient.Client)))
		health = append(health, func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Health(ctx)
		})
	}

	source := ticketsource.New(cfg.Ticketing, log)
	syncer := syncservice.New(source, attendeeStore, petStore, log, syncOpts...)

	var validator middleware.JWTValidator
	if cfg.JWTSigningKey != "" {
		validator = jwttoken.NewService(cfg.JWTSigningKey)
	} else {
		log.Warn("JWT_SIGNING_KEY not set, admin endpoints are unauthenticated")
	}

	handler := synchandler.New(syncer, recorder, log)
	router := httptransport.NewRouter(handler, validator, log, health)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting checkinhub", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
