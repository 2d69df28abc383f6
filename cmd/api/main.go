package main

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/seo-pirate/backend/internal/auth/http"
	authservice "github.com/seo-pirate/backend/internal/auth/service"
	"github.com/seo-pirate/backend/internal/common/clock"
	"github.com/seo-pirate/backend/internal/common/config"
	"github.com/seo-pirate/backend/internal/common/constants"
	commoncrypto "github.com/seo-pirate/backend/internal/common/crypto"
	"github.com/seo-pirate/backend/internal/common/db"
	commonhttp "github.com/seo-pirate/backend/internal/common/http"
	"github.com/seo-pirate/backend/internal/common/jwtverify"
	"github.com/seo-pirate/backend/internal/common/logger"
	"github.com/seo-pirate/backend/internal/common/server"
	"github.com/seo-pirate/backend/internal/scraper"
	userrepo "github.com/seo-pirate/backend/internal/user/repository"
	websitehttp "github.com/seo-pirate/backend/internal/website/http"
	websiterepo "github.com/seo-pirate/backend/internal/website/repository"
	websiteservice "github.com/seo-pirate/backend/internal/website/service"
)

func main() {
	log, err := logger.New("logs", "api", constants.DefaultLogLevel)
	if err != nil {
		panic(err)
	}

	cfg, err := config.LoadAPIConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), constants.MigrationTimeout)
	if err := db.RunMigrations(migrateCtx, cfg.DatabaseURL); err != nil {
		migrateCancel()
		log.Fatalf("failed to run migrations: %v", err)
	}
	migrateCancel()

	pool := db.NewPool(log, cfg.DatabaseURL)

	users := userrepo.NewPgRepository(pool)
	websites := websiterepo.NewPgRepository(pool)

	tokens := authservice.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, clock.NewRealClock())
	auth := authservice.NewAuthService(authservice.AuthServiceDeps{
		Repo:        users,
		Hasher:      commoncrypto.NewBcryptHasher(cfg.BcryptCost),
		IDGenerator: commoncrypto.NewUUIDGenerator(),
		Tokens:      tokens,
		Log:         log,
	})

	extractor := scraper.NewHTTPExtractor(cfg.ScrapeTimeout)
	websiteSvc := websiteservice.NewWebsiteService(websiteservice.WebsiteServiceDeps{
		Repo:          websites,
		Extractor:     extractor,
		IDGenerator:   commoncrypto.NewUUIDGenerator(),
		ScrapeTimeout: cfg.ScrapeTimeout,
		RefreshOnRead: cfg.RefreshOnRead,
		Log:           log,
	})

	guard := jwtverify.Middleware(cfg.JWTSecret, log)
	limits := commonhttp.NewStrictRateLimiter()

	websiteHandler := websitehttp.NewHandler(websiteSvc, guard, cfg.RequestTimeout, log)

	mux := http.NewServeMux()
	mux.Handle("/api/auth/", authhttp.NewHandler(auth, guard, limits, cfg.RequestTimeout, log))
	mux.Handle("/api/websites", websiteHandler)
	mux.Handle("/api/websites/", websiteHandler)
	mux.Handle("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())

	handler := commonhttp.BuildBaseHandler(log, mux)
	srv := server.NewServer(server.DefaultServerConfig(cfg.HTTPPort), handler)

	server.StartWithGracefulShutdownAndHooks(srv, log, "api", []server.ShutdownHook{
		func(ctx context.Context) error {
			pool.Close()
			return nil
		},
	})
}
