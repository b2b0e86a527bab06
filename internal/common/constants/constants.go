package constants

import "time"

const (
	AccessTokenCookieName = "at"
	XHRHeaderValue        = "XMLHttpRequest"

	JWTSecretMinLength = 32

	DefaultMaxRequestSize = 1 << 20

	AuthProbeTimeout  = 2 * time.Second
	AuthProbeCacheTTL = 5 * time.Second

	AccountStatusActive = "active"

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultRequestTimeout = 5 * time.Second

	DefaultHTTPPort = "3000"

	RateLimitCleanupInterval          = 1 * time.Minute
	RateLimitGeneralRequestsPerSecond = 50
	RateLimitGeneralBurst             = 100
	RateLimitAPIRequestsPerSecond     = 20
	RateLimitAPIBurst                 = 40

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
