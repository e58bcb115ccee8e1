package api

import (
	"net/http"

	"oabstudy/internal/models"
)

// HealthHandler is the liveness probe.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, models.HealthStatus{Status: "ok"})
}

// TokenInfo reports the lifetime of issued tokens.
func (s *Server) TokenInfo(w http.ResponseWriter, r *http.Request) {
	SendSuccessResponse(w, map[string]int{
		"expirationMinutes": int(s.issuer.TTL().Minutes()),
	})
}
