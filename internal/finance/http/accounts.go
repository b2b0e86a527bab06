package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/mlc-apps/finance-backend/internal/common/errors"
	commonhttp "github.com/mlc-apps/finance-backend/internal/common/http"
	"github.com/mlc-apps/finance-backend/internal/common/logger"
	"github.com/mlc-apps/finance-backend/internal/finance/domain"
	"github.com/mlc-apps/finance-backend/internal/store"
)

type createAccountRequest struct {
	Name           string  `json:"name" validate:"required"`
	Type           string  `json:"type" validate:"required,oneof=cash card crypto other"`
	Currency       string  `json:"currency" validate:"required"`
	InitialBalance float64 `json:"initialBalance"`
	Note           string  `json:"note"`
}

type statusResponse struct {
	Status string `json:"status"`
}

var statusOK = statusResponse{Status: "ok"}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	commonhttp.WriteJSON(w, http.StatusOK, h.accounts.List())
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.HandleError(w, r, commonerrors.ErrInvalidPayload.WithCause(err), h.log)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.log.Warnf("create account failed: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeValidationFailed, validationMessage(err), nil, "")
		return
	}

	account := h.accounts.Add(store.AccountInput{
		Name:           req.Name,
		Type:           req.Type,
		Currency:       req.Currency,
		InitialBalance: req.InitialBalance,
		Note:           req.Note,
	})

	h.log.WithFields(r.Context(), logger.Fields{
		"account_id": account.ID,
		"action":     "account_created",
	}).Info("account created")

	commonhttp.WriteJSON(w, http.StatusCreated, account)
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	var account domain.Account
	if err := commonhttp.DecodeJSON(r, &account); err != nil {
		commonhttp.HandleError(w, r, commonerrors.ErrInvalidPayload.WithCause(err), h.log)
		return
	}

	if account.ID == "" {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeAccountIDRequired, "account id is required", nil, "")
		return
	}

	// An absent id is reported as success on purpose; see the store docs.
	if !h.accounts.Update(account) {
		h.log.WithFields(r.Context(), logger.Fields{
			"account_id": account.ID,
			"action":     "account_update_miss",
		}).Warn("update matched no account")
	}

	commonhttp.WriteJSON(w, http.StatusOK, statusOK)
}

func (h *Handler) removeAccount(w http.ResponseWriter, r *http.Request) {
	id := paramFromContext(r.Context(), "id")
	if id == "" {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeAccountIDRequired, "account id is required", nil, "")
		return
	}

	if !h.accounts.Remove(id) {
		h.log.WithFields(r.Context(), logger.Fields{
			"account_id": id,
			"action":     "account_remove_miss",
		}).Warn("remove matched no account")
	}

	commonhttp.WriteJSON(w, http.StatusOK, statusOK)
}

func (h *Handler) listCurrencies(w http.ResponseWriter, r *http.Request) {
	commonhttp.WriteJSON(w, http.StatusOK, store.Currencies())
}

func (h *Handler) listAccountTypes(w http.ResponseWriter, r *http.Request) {
	commonhttp.WriteJSON(w, http.StatusOK, domain.AccountTypes())
}

func validationMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		field := validationErrs[0]
		return "invalid field " + field.Field() + " (" + field.Tag() + ")"
	}
	return "validation failed"
}
