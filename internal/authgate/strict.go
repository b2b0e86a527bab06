package authgate

import (
	"net/http"

	"github.com/mlc-apps/finance-backend/internal/common/constants"
	commonerrors "github.com/mlc-apps/finance-backend/internal/common/errors"
	commonhttp "github.com/mlc-apps/finance-backend/internal/common/http"
	"github.com/mlc-apps/finance-backend/internal/common/logger"
	"github.com/mlc-apps/finance-backend/internal/observability/metrics"
	"github.com/mlc-apps/finance-backend/internal/token"
)

// StrictGate protects API endpoints. Unlike the page gate it never
// redirects: script clients get machine-readable status codes.
type StrictGate struct {
	verifier token.Verifier
	log      *logger.Logger
}

func NewStrictGate(verifier token.Verifier, log *logger.Logger) *StrictGate {
	return &StrictGate{verifier: verifier, log: log}
}

func (g *StrictGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Requested-With") != constants.XHRHeaderValue {
			g.log.Warnf("strict gate rejected path=%s: not an XHR call", r.URL.Path)
			metrics.GateDecisionsTotal.WithLabelValues("strict", "bad_request").Inc()
			commonhttp.HandleError(w, r, commonerrors.ErrNotXHR, g.log)
			return
		}

		cookie, err := r.Cookie(constants.AccessTokenCookieName)
		if err != nil || cookie.Value == "" {
			g.log.Warnf("strict gate rejected path=%s: missing access token", r.URL.Path)
			metrics.GateDecisionsTotal.WithLabelValues("strict", "unauthorized").Inc()
			commonhttp.HandleError(w, r, commonerrors.ErrMissingAccessToken, g.log)
			return
		}

		identity, err := g.verifier.Verify(cookie.Value)
		if err != nil {
			g.log.Warnf("strict gate rejected path=%s: %v", r.URL.Path, err)
			metrics.GateDecisionsTotal.WithLabelValues("strict", "unauthorized").Inc()
			commonhttp.HandleError(w, r, commonerrors.ErrInvalidToken.WithCause(err), g.log)
			return
		}

		metrics.GateDecisionsTotal.WithLabelValues("strict", "admit").Inc()
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}
