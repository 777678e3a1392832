package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cantoria-vocal/choir-manager-api/internal/adapters/httpapi"
	memactivityrepo "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/activityrepo"
	memattendancerepo "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/attendancerepo"
	memgrouprepo "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/grouprepo"
	memidempotency "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/idempotency"
	memmediastore "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/mediastore"
	memmemberrepo "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/memberrepo"
	memsongrepo "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/songrepo"
	postgres "github.com/cantoria-vocal/choir-manager-api/internal/adapters/postgres"
	pgactivityrepo "github.com/cantoria-vocal/choir-manager-api/internal/adapters/postgres/activityrepo"
	pgattendancerepo "github.com/cantoria-vocal/choir-manager-api/internal/adapters/postgres/attendancerepo"
	pggrouprepo "github.com/cantoria-vocal/choir-manager-api/internal/adapters/postgres/grouprepo"
	pgidempotency "github.com/cantoria-vocal/choir-manager-api/internal/adapters/postgres/idempotency"
	pgmemberrepo "github.com/cantoria-vocal/choir-manager-api/internal/adapters/postgres/memberrepo"
	pgsongrepo "github.com/cantoria-vocal/choir-manager-api/internal/adapters/postgres/songrepo"
	s3mediastore "github.com/cantoria-vocal/choir-manager-api/internal/adapters/s3/mediastore"
	"github.com/cantoria-vocal/choir-manager-api/internal/app/activities"
	"github.com/cantoria-vocal/choir-manager-api/internal/app/attendance"
	"github.com/cantoria-vocal/choir-manager-api/internal/app/group"
	"github.com/cantoria-vocal/choir-manager-api/internal/app/members"
	"github.com/cantoria-vocal/choir-manager-api/internal/app/songs"
	platformclock "github.com/cantoria-vocal/choir-manager-api/internal/platform/clock"
	"github.com/cantoria-vocal/choir-manager-api/internal/platform/config"
	activityrepoport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/activityrepo"
	attendancerepoport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/attendancerepo"
	grouprepoport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/grouprepo"
	idempotencyport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/idempotency"
	mediastoreport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/mediastore"
	memberrepoport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/memberrepo"
	songrepoport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/songrepo"
)

func main() {
	// .env is optional; real deployments configure the environment directly.
	_ = godotenv.Load()

	port := getenv("PORT", "8080")

	// Auth configuration:
	// - Production: AUTH_MODE=token with an AUTH_TOKENS table
	// - Local dev: AUTH_MODE=dev to use X-Debug-Subject
	authCfg, err := config.LoadAuthConfigFromEnv()
	if err != nil {
		log.Fatalf("invalid auth config: %v", err)
	}
	var authMW func(http.Handler) http.Handler
	switch authCfg.Mode {
	case "dev":
		authMW = httpapi.NewDevAuthMiddleware(authCfg.DevSubject)
	default:
		authMW = httpapi.NewStaticTokenAuthMiddleware(authCfg.Tokens)
	}

	clk := platformclock.NewSystemClock()

	mediaCfg, err := config.LoadMediaConfigFromEnv()
	if err != nil {
		log.Fatalf("invalid media config: %v", err)
	}
	var media mediastoreport.Store
	switch mediaCfg.Backend {
	case "s3":
		media, err = s3mediastore.NewStoreFromEnv(context.Background(), mediaCfg.S3Bucket)
		if err != nil {
			log.Fatalf("invalid s3 config: %v", err)
		}
	default:
		media = memmediastore.NewStore()
	}

	storageBackend := getenv("STORAGE_BACKEND", "memory")
	var (
		memberRepo     memberrepoport.Repository
		groupRepo      grouprepoport.Repository
		songRepo       songrepoport.Repository
		activityRepo   activityrepoport.Repository
		attendanceRepo attendancerepoport.Repository
		idemStore      idempotencyport.Store
		cleanup        func()
	)

	switch storageBackend {
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		pool, err := postgres.NewPool(context.Background(), dsn, postgres.PoolOptions{})
		if err != nil {
			log.Fatalf("invalid postgres config: %v", err)
		}
		cleanup = pool.Close

		memberRepo = pgmemberrepo.NewRepo(pool)
		groupRepo = pggrouprepo.NewRepo(pool)
		songRepo = pgsongrepo.NewRepo(pool)
		activityRepo = pgactivityrepo.NewRepo(pool)
		attendanceRepo = pgattendancerepo.NewRepo(pool)
		idemStore = pgidempotency.NewStore(pool)
	default:
		memberRepo = memmemberrepo.NewRepo()
		groupRepo = memgrouprepo.NewRepo()
		songRepo = memsongrepo.NewRepo()
		activityRepo = memactivityrepo.NewRepo()
		attendanceRepo = memattendancerepo.NewRepo()
		idemStore = memidempotency.NewStore()
	}

	if cleanup != nil {
		defer cleanup()
	}

	api := httpapi.NewServer(
		group.NewService(groupRepo, clk),
		members.NewService(memberRepo, clk),
		songs.NewService(songRepo, media, clk),
		activities.NewService(activityRepo, clk),
		attendance.NewService(attendanceRepo, activityRepo, memberRepo, clk),
		idemStore,
	)

	handler := httpapi.NewRouter(api, httpapi.RouterOptions{
		Auth:               authMW,
		CORSAllowedOrigins: splitCSV(os.Getenv("CORS_ALLOWED_ORIGINS")),
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("api listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
