package api

import (
	"net/http"

	"oabstudy/internal/auth"
)

// AuthMiddleware checks the bearer token and puts the student id in the context.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return s.issuer.Middleware(SendErrorResponse)(next)
}

// studentID reads the authenticated student or answers 401.
func studentID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := auth.StudentIDFromContext(r.Context())
	if !ok {
		SendErrorResponse(w, http.StatusUnauthorized, "Não autorizado")
	}
	return id, ok
}
