package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/mlc-apps/finance-backend/internal/common/db"
	"github.com/mlc-apps/finance-backend/internal/common/logger"
	"github.com/mlc-apps/finance-backend/internal/user/domain"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	FindByLogin(ctx context.Context, login string) (domain.User, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewPgRepository(pool *pgxpool.Pool, log *logger.Logger) *PgRepository {
	return &PgRepository{pool: pool, log: log}
}

func (r *PgRepository) FindByLogin(ctx context.Context, login string) (domain.User, error) {
	var user domain.User

	err := db.RetryWithBackoff(ctx, r.log, db.DefaultRetryConfig, func() error {
		start := time.Now()
		row := r.pool.QueryRow(
			ctx,
			`SELECT "uid", "login" FROM users WHERE login = $1 LIMIT 1`,
			login,
		)
		return db.HandleQueryError(row.Scan(&user.UID, &user.Login), ErrUserNotFound, "find user by login", start)
	})
	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}
