package api

import (
	"errors"
	"log"
	"net/http"
	"net/mail"
	"strings"

	"oabstudy/internal/database"
	"oabstudy/internal/models"
)

const minPasswordLength = 6

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		SendErrorResponse(w, http.StatusBadRequest, "Nome, email e senha são obrigatórios")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		SendErrorResponse(w, http.StatusBadRequest, "Email inválido")
		return
	}
	if len(req.Password) < minPasswordLength {
		SendErrorResponse(w, http.StatusBadRequest, "A senha deve ter pelo menos 6 caracteres")
		return
	}

	student, err := s.db.CreateStudent(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, database.ErrEmailTaken) {
			SendErrorResponse(w, http.StatusConflict, "Email já cadastrado")
			return
		}
		log.Printf("register: %v", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Erro ao cadastrar")
		return
	}

	sendJSON(w, http.StatusCreated, models.Envelope[models.RegisterResponse]{
		Success: true,
		Data:    models.RegisterResponse{ID: student.ID},
	})
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		SendErrorResponse(w, http.StatusBadRequest, "Email e senha são obrigatórios")
		return
	}

	student, err := s.db.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			SendErrorResponse(w, http.StatusUnauthorized, "Email ou senha inválidos")
			return
		}
		log.Printf("login: %v", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Erro ao autenticar")
		return
	}

	token, err := s.issuer.GenerateToken(student.ID, student.Email)
	if err != nil {
		log.Printf("login: %v", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Erro ao gerar token")
		return
	}

	SendSuccessResponse(w, models.AuthResponse{Token: token})
}
