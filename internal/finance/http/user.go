package http

import (
	"errors"
	"net/http"

	"github.com/mlc-apps/finance-backend/internal/authgate"
	commonerrors "github.com/mlc-apps/finance-backend/internal/common/errors"
	commonhttp "github.com/mlc-apps/finance-backend/internal/common/http"
	userrepo "github.com/mlc-apps/finance-backend/internal/user/repository"
)

// getUser resolves the current user from the identity the strict gate
// attached to the request context. An unknown identity yields an empty
// body rather than an error; the session is valid, the record is not there.
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := authgate.IdentityFromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrInvalidToken, h.log)
		return
	}

	user, err := h.users.FindByLogin(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			w.WriteHeader(http.StatusOK)
			return
		}
		commonhttp.HandleError(w, r, commonerrors.ErrDatabaseError.WithCause(err), h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, user)
}
