package authgate

import (
	"context"

	"github.com/mlc-apps/finance-backend/internal/common/logger"
	"github.com/mlc-apps/finance-backend/internal/token"
)

type mockVerifier struct {
	verifyFunc func(tokenString string) (token.Identity, error)
}

func (m *mockVerifier) Verify(tokenString string) (token.Identity, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(tokenString)
	}
	return token.Identity{}, token.ErrInvalidToken
}

type mockProber struct {
	healthy bool
	calls   int
}

func (m *mockProber) Healthy(ctx context.Context) bool {
	m.calls++
	return m.healthy
}

func testLogger() *logger.Logger {
	log, _ := logger.New("", "test", "error")
	return log
}
