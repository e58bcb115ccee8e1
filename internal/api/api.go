// Package api is the development backend: a local implementation of the
// study service HTTP contract, used for manual runs and end-to-end tests of
// the client.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"oabstudy/internal/auth"
	"oabstudy/internal/database"
)

// Limits applied to every student on the free plan.
const (
	SessionsPerDay      = 5
	QuestionsPerSession = 5
)

// Server holds the dependencies shared by all handlers.
type Server struct {
	db        *database.DB
	issuer    *auth.Issuer
	questions *QuestionBank
}

func NewServer(db *database.DB, issuer *auth.Issuer, questions *QuestionBank) *Server {
	if questions == nil {
		questions = DefaultQuestionBank()
	}
	return &Server{db: db, issuer: issuer, questions: questions}
}

// SetupRouter wires routes and middleware. Empty allowedOrigins means "*".
func SetupRouter(s *Server, allowedOrigins []string, logRequests bool) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()

	if logRequests {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		SendErrorResponse(w, http.StatusNotFound, "Rota não encontrada")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		SendErrorResponse(w, http.StatusMethodNotAllowed, "Método não permitido")
	})

	// public
	r.Group(func(r chi.Router) {
		r.Get("/health", HealthHandler)
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Get("/auth/token-info", s.TokenInfo)
	})

	// protected
	r.Group(func(r chi.Router) {
		r.Use(s.AuthMiddleware)

		r.Post("/estudo/iniciar", s.StartStudy)
		r.Post("/estudo/responder", s.AnswerQuestion)
		r.Post("/estudo/finalizar", s.FinishStudy)

		r.Post("/peca/iniciar", s.StartDraft)
		r.Post("/peca/avaliar", s.EvaluateDraft)

		r.Get("/estudante/painel", s.Dashboard)
		r.Get("/estudante/relatorio", s.Report)
	})

	return r
}
