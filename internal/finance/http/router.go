// Package http exposes the finance CRUD API. Routes are declared in an
// explicit table built at startup: (method, pattern) -> middleware -> handler.
package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mlc-apps/finance-backend/internal/authgate"
	commonhttp "github.com/mlc-apps/finance-backend/internal/common/http"
	"github.com/mlc-apps/finance-backend/internal/common/logger"
	"github.com/mlc-apps/finance-backend/internal/store"
	userrepo "github.com/mlc-apps/finance-backend/internal/user/repository"
)

type paramsKeyType string

const paramsKey paramsKeyType = "route_params"

func paramFromContext(ctx context.Context, name string) string {
	params, ok := ctx.Value(paramsKey).(map[string]string)
	if !ok {
		return ""
	}
	return params[name]
}

type Handler struct {
	accounts       *store.AccountStore
	categories     *store.CategoryStore
	users          userrepo.Repository
	validate       *validator.Validate
	log            *logger.Logger
	requestTimeout time.Duration
}

type route struct {
	method  string
	pattern string
	// strict routes are token-gated even when STRICT_API is off
	strict  bool
	handler http.HandlerFunc
}

type Router struct {
	routes []route
	log    *logger.Logger
}

type Config struct {
	Accounts       *store.AccountStore
	Categories     *store.CategoryStore
	Users          userrepo.Repository
	Gate           *authgate.StrictGate
	StrictAPI      bool
	RequestTimeout time.Duration
	Log            *logger.Logger
}

func NewRouter(cfg Config) *Router {
	h := &Handler{
		accounts:       cfg.Accounts,
		categories:     cfg.Categories,
		users:          cfg.Users,
		validate:       validator.New(),
		log:            cfg.Log,
		requestTimeout: cfg.RequestTimeout,
	}

	withTimeout := commonhttp.WithTimeout(cfg.RequestTimeout)

	routes := []route{
		{http.MethodGet, "/api/user", true, withTimeout(h.getUser)},
		{http.MethodGet, "/api/accounts", false, h.listAccounts},
		{http.MethodPost, "/api/accounts", false, h.createAccount},
		{http.MethodPatch, "/api/accounts", false, h.updateAccount},
		{http.MethodDelete, "/api/accounts/:id", false, h.removeAccount},
		{http.MethodGet, "/api/currencies", false, h.listCurrencies},
		{http.MethodGet, "/api/account-types", false, h.listAccountTypes},
		{http.MethodGet, "/api/categories", false, h.listCategories},
		{http.MethodPost, "/api/categories", false, h.createCategory},
		{http.MethodDelete, "/api/categories/:type/:id", false, h.removeCategory},
		{http.MethodPut, "/api/categories/:type", false, h.replaceCategories},
	}

	for i := range routes {
		if routes[i].strict || cfg.StrictAPI {
			gated := cfg.Gate.Middleware(routes[i].handler)
			routes[i].handler = gated.ServeHTTP
		}
	}

	return &Router{routes: routes, log: cfg.Log}
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	pathMatched := false

	for _, candidate := range rt.routes {
		params, ok := matchPattern(candidate.pattern, r.URL.Path)
		if !ok {
			continue
		}
		pathMatched = true

		if candidate.method != r.Method {
			continue
		}

		ctx := r.Context()
		if len(params) > 0 {
			ctx = context.WithValue(ctx, paramsKey, params)
		}
		candidate.handler(w, r.WithContext(ctx))
		return
	}

	if pathMatched {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
		return
	}

	commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeInvalidPath, "not found", nil, "")
}

func matchPattern(pattern, path string) (map[string]string, bool) {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	if len(patternParts) != len(pathParts) {
		return nil, false
	}

	var params map[string]string
	for i, part := range patternParts {
		if strings.HasPrefix(part, ":") {
			if pathParts[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[part[1:]] = pathParts[i]
			continue
		}
		if part != pathParts[i] {
			return nil, false
		}
	}

	return params, true
}
