// Package authgate decides, per request, whether it may reach application
// logic. Page navigation uses redirect-based re-authentication; API calls
// get plain status codes. Both funnel through one token.Verifier.
package authgate

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/mlc-apps/finance-backend/internal/common/constants"
	commonerrors "github.com/mlc-apps/finance-backend/internal/common/errors"
	commonhttp "github.com/mlc-apps/finance-backend/internal/common/http"
	"github.com/mlc-apps/finance-backend/internal/common/logger"
	"github.com/mlc-apps/finance-backend/internal/observability/metrics"
	"github.com/mlc-apps/finance-backend/internal/token"
)

var (
	assetExtRegex     = regexp.MustCompile(`\.(?:js|css|png|jpg|jpeg|gif|svg|ico|woff2?|ttf|eot|map|webp|json)$`)
	assetPathPrefixes = []string{"/_nuxt", "/assets", "/static", "/api"}
)

func isAssetPath(path string) bool {
	for _, prefix := range assetPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return assetExtRegex.MatchString(path)
}

type PageGate struct {
	verifier   token.Verifier
	prober     Prober
	refreshURL string
	log        *logger.Logger
}

func NewPageGate(verifier token.Verifier, prober Prober, authServiceURL string, log *logger.Logger) *PageGate {
	return &PageGate{
		verifier:   verifier,
		prober:     prober,
		refreshURL: authServiceURL + "/api/refresh-token",
		log:        log,
	}
}

func (g *PageGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Mutations are covered by the strict API gate, not the page gate.
		if r.Method != http.MethodGet {
			metrics.GateDecisionsTotal.WithLabelValues("page", "bypass_method").Inc()
			next.ServeHTTP(w, r)
			return
		}

		if isAssetPath(r.URL.Path) {
			metrics.GateDecisionsTotal.WithLabelValues("page", "bypass_asset").Inc()
			next.ServeHTTP(w, r)
			return
		}

		if !g.prober.Healthy(r.Context()) {
			g.log.WithFields(r.Context(), logger.Fields{
				"path":   r.URL.Path,
				"action": "page_gate_forbidden",
			}).Warn("auth service unhealthy, rejecting gated request")
			metrics.GateDecisionsTotal.WithLabelValues("page", "forbidden").Inc()
			commonhttp.HandleError(w, r, commonerrors.ErrAuthServiceUnavailable, g.log)
			return
		}

		cookie, err := r.Cookie(constants.AccessTokenCookieName)
		if err != nil || cookie.Value == "" {
			metrics.GateDecisionsTotal.WithLabelValues("page", "redirect").Inc()
			g.redirectToRefresh(w, r)
			return
		}

		identity, err := g.verifier.Verify(cookie.Value)
		if err != nil {
			// Expired and absent tokens look the same to the caller.
			metrics.GateDecisionsTotal.WithLabelValues("page", "redirect").Inc()
			g.redirectToRefresh(w, r)
			return
		}

		metrics.GateDecisionsTotal.WithLabelValues("page", "admit").Inc()
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func (g *PageGate) redirectToRefresh(w http.ResponseWriter, r *http.Request) {
	target := g.refreshURL + "?to=" + url.QueryEscape(requestURL(r))
	http.Redirect(w, r, target, http.StatusFound)
}

func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
