package bootstrap

import (
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/mlc-apps/finance-backend/internal/authgate"
	"github.com/mlc-apps/finance-backend/internal/common/clock"
	"github.com/mlc-apps/finance-backend/internal/common/config"
	"github.com/mlc-apps/finance-backend/internal/common/crypto"
	"github.com/mlc-apps/finance-backend/internal/common/db"
	"github.com/mlc-apps/finance-backend/internal/common/logger"
	"github.com/mlc-apps/finance-backend/internal/store"
	"github.com/mlc-apps/finance-backend/internal/token"
	userrepo "github.com/mlc-apps/finance-backend/internal/user/repository"
)

type App struct {
	Log        *logger.Logger
	Config     config.Config
	Pool       *pgxpool.Pool
	Users      userrepo.Repository
	Accounts   *store.AccountStore
	Categories *store.CategoryStore
	Verifier   token.Verifier
	Prober     authgate.Prober
}

func NewApp() (*App, error) {
	log, err := logger.New(os.Getenv("LOG_DIR"), "finance", os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
		return nil, err
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	if pool == nil {
		return nil, fmt.Errorf("failed to initialize database pool")
	}

	clk := clock.NewRealClock()
	idGen := crypto.NewUUIDGenerator()

	return &App{
		Log:        log,
		Config:     cfg,
		Pool:       pool,
		Users:      userrepo.NewPgRepository(pool, log),
		Accounts:   store.NewAccountStore(idGen, clk),
		Categories: store.NewCategoryStore(idGen),
		Verifier:   token.NewJWTVerifier(cfg.JWTSecret),
		Prober:     authgate.NewLivenessProber(cfg.AuthServiceURL, cfg.ProbeTimeout, cfg.ProbeCacheTTL, clk, log),
	}, nil
}
