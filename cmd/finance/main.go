package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mlc-apps/finance-backend/internal/authgate"
	"github.com/mlc-apps/finance-backend/internal/common/bootstrap"
	"github.com/mlc-apps/finance-backend/internal/common/constants"
	commonhttp "github.com/mlc-apps/finance-backend/internal/common/http"
	srv "github.com/mlc-apps/finance-backend/internal/common/server"
	financehttp "github.com/mlc-apps/finance-backend/internal/finance/http"
)

func main() {
	app, err := bootstrap.NewApp()
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize application: %v\n", err))
		os.Exit(1)
	}
	defer app.Pool.Close()

	log := app.Log
	cfg := app.Config

	strictGate := authgate.NewStrictGate(app.Verifier, log)
	pageGate := authgate.NewPageGate(app.Verifier, app.Prober, cfg.AuthServiceURL, log)

	apiRouter := financehttp.NewRouter(financehttp.Config{
		Accounts:       app.Accounts,
		Categories:     app.Categories,
		Users:          app.Users,
		Gate:           strictGate,
		StrictAPI:      cfg.StrictAPI,
		RequestTimeout: cfg.RequestTimeout,
		Log:            log,
	})

	pages := pageGate.Middleware(http.FileServer(http.Dir(cfg.StaticDir)))

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.RequireMethod(http.MethodGet)(commonhttp.HealthHandler(log)))
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", pages)

	generalLimiter := commonhttp.NewRateLimiter(
		constants.RateLimitGeneralRequestsPerSecond,
		constants.RateLimitGeneralBurst,
	)
	apiLimiter := commonhttp.NewRateLimiter(
		constants.RateLimitAPIRequestsPerSecond,
		constants.RateLimitAPIBurst,
	)

	baseHandler := commonhttp.BuildBaseHandler(log, mux)
	generalLimited := generalLimiter.Middleware()(baseHandler)
	apiLimited := apiLimiter.Middleware()(baseHandler)

	finalHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/health" || r.URL.Path == "/metrics":
			baseHandler.ServeHTTP(w, r)
		case strings.HasPrefix(r.URL.Path, "/api/"):
			apiLimited.ServeHTTP(w, r)
		default:
			generalLimited.ServeHTTP(w, r)
		}
	})

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	srv.StartWithGracefulShutdown(server, log, "finance")
}
