package http

import (
	"net/http"

	"github.com/mlc-apps/finance-backend/internal/common/logger"
)

// HealthHandler reports process liveness. Method filtering is left to
// RequireMethod at the mux.
func HealthHandler(log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("health check request")
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
