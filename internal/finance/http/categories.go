package http

import (
	"net/http"

	commonerrors "github.com/mlc-apps/finance-backend/internal/common/errors"
	commonhttp "github.com/mlc-apps/finance-backend/internal/common/http"
	"github.com/mlc-apps/finance-backend/internal/common/logger"
	"github.com/mlc-apps/finance-backend/internal/finance/domain"
)

type createCategoryRequest struct {
	Title string `json:"title" validate:"required"`
	Type  string `json:"type" validate:"required,oneof=incomes expenses"`
}

type replaceCategoriesRequest struct {
	List []domain.Category `json:"list"`
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	commonhttp.WriteJSON(w, http.StatusOK, h.categories.List())
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.HandleError(w, r, commonerrors.ErrInvalidPayload.WithCause(err), h.log)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.log.Warnf("create category failed: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeValidationFailed, validationMessage(err), nil, "")
		return
	}

	group, _ := domain.ParseGroup(req.Type)
	category := h.categories.Add(group, req.Title)

	h.log.WithFields(r.Context(), logger.Fields{
		"category_id": category.ID,
		"group":       string(group),
		"action":      "category_created",
	}).Info("category created")

	commonhttp.WriteJSON(w, http.StatusCreated, category)
}

func (h *Handler) removeCategory(w http.ResponseWriter, r *http.Request) {
	group, ok := domain.ParseGroup(paramFromContext(r.Context(), "type"))
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrUnknownCategoryGroup, h.log)
		return
	}

	id := paramFromContext(r.Context(), "id")
	if id == "" {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeCategoryIDRequired, "category id is required", nil, "")
		return
	}

	if !h.categories.Remove(group, id) {
		h.log.WithFields(r.Context(), logger.Fields{
			"category_id": id,
			"group":       string(group),
			"action":      "category_remove_miss",
		}).Warn("remove matched no category")
	}

	commonhttp.WriteJSON(w, http.StatusOK, statusOK)
}

func (h *Handler) replaceCategories(w http.ResponseWriter, r *http.Request) {
	group, ok := domain.ParseGroup(paramFromContext(r.Context(), "type"))
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrUnknownCategoryGroup, h.log)
		return
	}

	var req replaceCategoriesRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.HandleError(w, r, commonerrors.ErrInvalidPayload.WithCause(err), h.log)
		return
	}

	h.categories.Replace(group, req.List)

	h.log.WithFields(r.Context(), logger.Fields{
		"group":  string(group),
		"count":  len(req.List),
		"action": "categories_replaced",
	}).Info("category group replaced")

	commonhttp.WriteJSON(w, http.StatusOK, statusOK)
}
