package constants

import "time"

const (
	PasswordMinLength  = 6
	PasswordMaxLength  = 72
	JWTSecretMinLength = 32

	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultAPIHTTPPort     = "8080"
	DefaultRequestTimeout  = 5 * time.Second
	DefaultAccessTokenTTL  = 6 * time.Hour
	DefaultBcryptCost      = 10
	DefaultScrapeTimeout   = 15 * time.Second
	DefaultScrapeUserAgent = "Mozilla/5.0 (compatible; seo-pirate/1.0)"
	DefaultLogLevel        = "INFO"

	MigrationTimeout = time.Minute

	RateLimitCleanupInterval = 5 * time.Minute

	RateLimitLoginRequestsPerSecond    = 1.0
	RateLimitLoginBurst                = 5
	RateLimitRegisterRequestsPerSecond = 0.5
	RateLimitRegisterBurst             = 3
	RateLimitGeneralRequestsPerSecond  = 20.0
	RateLimitGeneralBurst              = 40

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
