package http

import (
	"context"
	"fmt"

	"github.com/mlc-apps/finance-backend/internal/common/logger"
	"github.com/mlc-apps/finance-backend/internal/token"
	userdomain "github.com/mlc-apps/finance-backend/internal/user/domain"
	userrepo "github.com/mlc-apps/finance-backend/internal/user/repository"
)

type mockUsers struct {
	findByLoginFunc func(ctx context.Context, login string) (userdomain.User, error)
}

func (m *mockUsers) FindByLogin(ctx context.Context, login string) (userdomain.User, error) {
	if m.findByLoginFunc != nil {
		return m.findByLoginFunc(ctx, login)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

type mockVerifier struct {
	verifyFunc func(tokenString string) (token.Identity, error)
}

func (m *mockVerifier) Verify(tokenString string) (token.Identity, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(tokenString)
	}
	return token.Identity{}, token.ErrInvalidToken
}

type seqIDGenerator struct {
	n int
}

func (g *seqIDGenerator) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func testLogger() *logger.Logger {
	log, _ := logger.New("", "test", "error")
	return log
}
