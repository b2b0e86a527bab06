package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mlc-apps/finance-backend/internal/authgate"
	"github.com/mlc-apps/finance-backend/internal/common/clock"
	commonhttp "github.com/mlc-apps/finance-backend/internal/common/http"
	"github.com/mlc-apps/finance-backend/internal/finance/domain"
	"github.com/mlc-apps/finance-backend/internal/store"
	"github.com/mlc-apps/finance-backend/internal/token"
	userdomain "github.com/mlc-apps/finance-backend/internal/user/domain"
	userrepo "github.com/mlc-apps/finance-backend/internal/user/repository"
)

func newTestRouter(t *testing.T, users userrepo.Repository, verifier token.Verifier) *Router {
	t.Helper()

	if users == nil {
		users = &mockUsers{}
	}
	if verifier == nil {
		verifier = &mockVerifier{}
	}

	log := testLogger()
	idGen := &seqIDGenerator{}
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	return NewRouter(Config{
		Accounts:       store.NewAccountStore(idGen, clk),
		Categories:     store.NewCategoryStore(idGen),
		Users:          users,
		Gate:           authgate.NewStrictGate(verifier, log),
		StrictAPI:      false,
		RequestTimeout: time.Second,
		Log:            log,
	})
}

func doJSON(t *testing.T, router *Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return out
}

func TestCreateAccount_ReturnsFullRecord(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/accounts", map[string]any{
		"name":           "Main card",
		"type":           "card",
		"currency":       "EUR",
		"initialBalance": 100.0,
		"note":           "salary",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	account := decodeBody[domain.Account](t, rec)
	if account.ID == "" {
		t.Error("expected generated account id")
	}
	if account.Balance != 100 || account.InitialBalance != 100 {
		t.Errorf("expected balance seeded from initialBalance, got balance=%v initial=%v", account.Balance, account.InitialBalance)
	}
	if account.Status != "active" {
		t.Errorf("expected status active, got %q", account.Status)
	}
	if account.CreatedDate.IsZero() {
		t.Error("expected createdDate to be set")
	}

	listRec := doJSON(t, router, http.MethodGet, "/api/accounts", nil)
	accounts := decodeBody[[]domain.Account](t, listRec)
	if len(accounts) != 1 || accounts[0].ID != account.ID {
		t.Errorf("expected created account in listing, got %+v", accounts)
	}
}

func TestCreateAccount_RejectsUnknownType(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/accounts", map[string]any{
		"name":     "Vault",
		"type":     "stocks",
		"currency": "USD",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	envelope := decodeBody[commonhttp.ErrorEnvelope](t, rec)
	if envelope.Code != commonhttp.CodeValidationFailed {
		t.Errorf("expected code %s, got %s", commonhttp.CodeValidationFailed, envelope.Code)
	}
}

func TestCreateAccount_RejectsMalformedJSON(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/accounts", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	envelope := decodeBody[commonhttp.ErrorEnvelope](t, rec)
	if envelope.Code != commonhttp.CodeInvalidPayload {
		t.Errorf("expected code %s, got %s", commonhttp.CodeInvalidPayload, envelope.Code)
	}
}

func TestUpdateAccount_ReplacesInPlace(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	first := decodeBody[domain.Account](t, doJSON(t, router, http.MethodPost, "/api/accounts", map[string]any{
		"name": "First", "type": "cash", "currency": "USD",
	}))
	decodeBody[domain.Account](t, doJSON(t, router, http.MethodPost, "/api/accounts", map[string]any{
		"name": "Second", "type": "card", "currency": "EUR",
	}))

	first.Name = "Renamed"
	rec := doJSON(t, router, http.MethodPatch, "/api/accounts", first)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	accounts := decodeBody[[]domain.Account](t, doJSON(t, router, http.MethodGet, "/api/accounts", nil))
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].Name != "Renamed" {
		t.Errorf("expected updated record to keep its slot, got %q first", accounts[0].Name)
	}
	if accounts[1].Name != "Second" {
		t.Errorf("expected other record untouched, got %q", accounts[1].Name)
	}
}

func TestUpdateAccount_UnknownIDStillReportsOK(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	decodeBody[domain.Account](t, doJSON(t, router, http.MethodPost, "/api/accounts", map[string]any{
		"name": "Only", "type": "cash", "currency": "USD",
	}))

	rec := doJSON(t, router, http.MethodPatch, "/api/accounts", domain.Account{ID: "ghost", Name: "Nobody"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	status := decodeBody[statusResponse](t, rec)
	if status.Status != "ok" {
		t.Errorf("expected ok status, got %q", status.Status)
	}

	accounts := decodeBody[[]domain.Account](t, doJSON(t, router, http.MethodGet, "/api/accounts", nil))
	if len(accounts) != 1 || accounts[0].Name != "Only" {
		t.Errorf("expected stored state untouched, got %+v", accounts)
	}
}

func TestUpdateAccount_MissingIDRejected(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	rec := doJSON(t, router, http.MethodPatch, "/api/accounts", domain.Account{Name: "No id"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	envelope := decodeBody[commonhttp.ErrorEnvelope](t, rec)
	if envelope.Code != commonhttp.CodeAccountIDRequired {
		t.Errorf("expected code %s, got %s", commonhttp.CodeAccountIDRequired, envelope.Code)
	}
}

func TestRemoveAccount(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	account := decodeBody[domain.Account](t, doJSON(t, router, http.MethodPost, "/api/accounts", map[string]any{
		"name": "Doomed", "type": "cash", "currency": "USD",
	}))

	rec := doJSON(t, router, http.MethodDelete, "/api/accounts/"+account.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	accounts := decodeBody[[]domain.Account](t, doJSON(t, router, http.MethodGet, "/api/accounts", nil))
	if len(accounts) != 0 {
		t.Errorf("expected empty listing after removal, got %+v", accounts)
	}

	// removing an id that is already gone keeps the success contract
	rec = doJSON(t, router, http.MethodDelete, "/api/accounts/"+account.ID, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for repeat removal, got %d", rec.Code)
	}
}

func TestListCurrencies_StableAcrossCalls(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	first := decodeBody[domain.Currencies](t, doJSON(t, router, http.MethodGet, "/api/currencies", nil))
	second := decodeBody[domain.Currencies](t, doJSON(t, router, http.MethodGet, "/api/currencies", nil))

	if len(first.Regular) == 0 || len(first.Crypto) == 0 {
		t.Fatalf("expected both currency lists populated, got %+v", first)
	}
	if len(first.Regular) != len(second.Regular) || len(first.Crypto) != len(second.Crypto) {
		t.Error("expected identical payload across calls")
	}
}

func TestListAccountTypes(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/account-types", nil)
	types := decodeBody[[]string](t, rec)

	want := []string{"cash", "card", "crypto", "other"}
	if len(types) != len(want) {
		t.Fatalf("expected %v, got %v", want, types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("expected type %q at position %d, got %q", want[i], i, types[i])
		}
	}
}

func TestCategories_CreateAndList(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/categories", map[string]any{
		"title": "Salary", "type": "incomes",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[domain.Category](t, rec)
	if created.ID == "" || created.Title != "Salary" {
		t.Errorf("unexpected created category: %+v", created)
	}

	groups := decodeBody[domain.CategoryGroups](t, doJSON(t, router, http.MethodGet, "/api/categories", nil))
	if len(groups.Incomes) != 1 || groups.Incomes[0].ID != created.ID {
		t.Errorf("expected category under incomes, got %+v", groups)
	}
	if len(groups.Expenses) != 0 {
		t.Errorf("expected expenses untouched, got %+v", groups.Expenses)
	}
}

func TestCreateCategory_RejectsUnknownGroup(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/categories", map[string]any{
		"title": "Misc", "type": "savings",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	envelope := decodeBody[commonhttp.ErrorEnvelope](t, rec)
	if envelope.Code != commonhttp.CodeValidationFailed {
		t.Errorf("expected code %s, got %s", commonhttp.CodeValidationFailed, envelope.Code)
	}
}

func TestReplaceCategories_LeavesOtherGroupAlone(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	doJSON(t, router, http.MethodPost, "/api/categories", map[string]any{"title": "Rent", "type": "expenses"})

	rec := doJSON(t, router, http.MethodPut, "/api/categories/incomes", replaceCategoriesRequest{
		List: []domain.Category{{ID: "c-1", Title: "Bonus"}, {ID: "c-2", Title: "Dividends"}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	groups := decodeBody[domain.CategoryGroups](t, doJSON(t, router, http.MethodGet, "/api/categories", nil))
	if len(groups.Incomes) != 2 || groups.Incomes[0].Title != "Bonus" {
		t.Errorf("expected replaced incomes list, got %+v", groups.Incomes)
	}
	if len(groups.Expenses) != 1 || groups.Expenses[0].Title != "Rent" {
		t.Errorf("expected expenses untouched, got %+v", groups.Expenses)
	}
}

func TestReplaceCategories_UnknownGroupRejected(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	rec := doJSON(t, router, http.MethodPut, "/api/categories/savings", replaceCategoriesRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	envelope := decodeBody[commonhttp.ErrorEnvelope](t, rec)
	if envelope.Code != commonhttp.CodeUnknownGroup {
		t.Errorf("expected code %s, got %s", commonhttp.CodeUnknownGroup, envelope.Code)
	}
}

func TestRemoveCategory(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	created := decodeBody[domain.Category](t, doJSON(t, router, http.MethodPost, "/api/categories", map[string]any{
		"title": "Groceries", "type": "expenses",
	}))

	rec := doJSON(t, router, http.MethodDelete, "/api/categories/expenses/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	groups := decodeBody[domain.CategoryGroups](t, doJSON(t, router, http.MethodGet, "/api/categories", nil))
	if len(groups.Expenses) != 0 {
		t.Errorf("expected empty expenses after removal, got %+v", groups.Expenses)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/categories/savings/whatever", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown group, got %d", rec.Code)
	}
}

func userRequest(withXHR bool, tokenValue string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	if withXHR {
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	}
	if tokenValue != "" {
		req.AddCookie(&http.Cookie{Name: "at", Value: tokenValue})
	}
	return req
}

func TestGetUser_RequiresXHR(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, userRequest(false, "whatever"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	envelope := decodeBody[commonhttp.ErrorEnvelope](t, rec)
	if envelope.Code != commonhttp.CodeNotXHR {
		t.Errorf("expected code %s, got %s", commonhttp.CodeNotXHR, envelope.Code)
	}
}

func TestGetUser_MissingTokenUnauthorized(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, userRequest(true, ""))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	envelope := decodeBody[commonhttp.ErrorEnvelope](t, rec)
	if envelope.Code != commonhttp.CodeMissingAccessToken {
		t.Errorf("expected code %s, got %s", commonhttp.CodeMissingAccessToken, envelope.Code)
	}
}

func TestGetUser_InvalidTokenUnauthorized(t *testing.T) {
	router := newTestRouter(t, nil, &mockVerifier{
		verifyFunc: func(string) (token.Identity, error) {
			return token.Identity{}, token.ErrInvalidToken
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, userRequest(true, "bad-token"))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	envelope := decodeBody[commonhttp.ErrorEnvelope](t, rec)
	if envelope.Code != commonhttp.CodeInvalidToken {
		t.Errorf("expected code %s, got %s", commonhttp.CodeInvalidToken, envelope.Code)
	}
}

func TestGetUser_ReturnsMatchingUser(t *testing.T) {
	users := &mockUsers{
		findByLoginFunc: func(_ context.Context, login string) (userdomain.User, error) {
			if login != "alice" {
				t.Errorf("expected lookup for identity login, got %q", login)
			}
			return userdomain.User{UID: "u-1", Login: "alice"}, nil
		},
	}
	router := newTestRouter(t, users, &mockVerifier{
		verifyFunc: func(string) (token.Identity, error) {
			return token.Identity{ID: "alice"}, nil
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, userRequest(true, "good-token"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	user := decodeBody[userdomain.User](t, rec)
	if user.UID != "u-1" || user.Login != "alice" {
		t.Errorf("unexpected user payload: %+v", user)
	}
}

func TestGetUser_UnknownUserIsEmptySuccess(t *testing.T) {
	router := newTestRouter(t, &mockUsers{}, &mockVerifier{
		verifyFunc: func(string) (token.Identity, error) {
			return token.Identity{ID: "ghost"}, nil
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, userRequest(true, "good-token"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}

func TestGetUser_RepositoryFailure(t *testing.T) {
	users := &mockUsers{
		findByLoginFunc: func(context.Context, string) (userdomain.User, error) {
			return userdomain.User{}, errors.New("connection reset")
		},
	}
	router := newTestRouter(t, users, &mockVerifier{
		verifyFunc: func(string) (token.Identity, error) {
			return token.Identity{ID: "alice"}, nil
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, userRequest(true, "good-token"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	rec := doJSON(t, router, http.MethodPut, "/api/accounts", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	envelope := decodeBody[commonhttp.ErrorEnvelope](t, rec)
	if envelope.Code != commonhttp.CodeMethodNotAllowed {
		t.Errorf("expected code %s, got %s", commonhttp.CodeMethodNotAllowed, envelope.Code)
	}
}

func TestRouter_UnknownPath(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/transactions", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	envelope := decodeBody[commonhttp.ErrorEnvelope](t, rec)
	if envelope.Code != commonhttp.CodeInvalidPath {
		t.Errorf("expected code %s, got %s", commonhttp.CodeInvalidPath, envelope.Code)
	}
}
