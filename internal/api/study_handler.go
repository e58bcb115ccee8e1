package api

import (
	"errors"
	"log"
	"net/http"
	"slices"
	"strings"
	"time"

	"oabstudy/internal/database"
	"oabstudy/internal/models"
)

func (s *Server) StartStudy(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}

	var req models.StartStudyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ContextType == "" {
		req.ContextType = "oab"
	}

	used, err := s.db.SessionsStartedSince(r.Context(), id, startOfDay(time.Now()))
	if err != nil {
		log.Printf("start study: %v", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Erro ao iniciar sessão")
		return
	}
	if used >= SessionsPerDay {
		SendErrorResponse(w, http.StatusTooManyRequests, "Limite diário de sessões atingido")
		return
	}

	ids := s.questions.Pick(QuestionsPerSession)
	if len(ids) == 0 {
		SendErrorResponse(w, http.StatusServiceUnavailable, "Nenhuma questão disponível")
		return
	}

	sess, err := s.db.CreateStudySession(r.Context(), id, req.ContextType, ids)
	if err != nil {
		log.Printf("start study: %v", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Erro ao iniciar sessão")
		return
	}

	first, _ := s.questions.Get(ids[0])
	SendSuccessResponse(w, models.StudySession{SessionID: sess.ID, Question: &first.Question})
}

func (s *Server) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}

	var req models.AnswerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, ok := s.ownedSession(w, r, id, req.SessionID)
	if !ok {
		return
	}
	if sess.Finished {
		SendErrorResponse(w, http.StatusConflict, "Sessão já finalizada")
		return
	}
	if !slices.Contains(sess.QuestionIDs, req.QuestionID) {
		SendErrorResponse(w, http.StatusBadRequest, "Questão não pertence à sessão")
		return
	}

	q, ok := s.questions.Get(req.QuestionID)
	if !ok {
		SendErrorResponse(w, http.StatusNotFound, "Questão não encontrada")
		return
	}

	answer := strings.ToUpper(strings.TrimSpace(req.Answer))
	if _, valid := q.Alternatives[answer]; !valid {
		SendErrorResponse(w, http.StatusBadRequest, "Alternativa inválida")
		return
	}

	correct := answer == q.Answer
	err := s.db.SaveAnswer(r.Context(), sess.ID, database.Answer{
		QuestionID: q.ID,
		Area:       q.Area,
		Answer:     answer,
		Correct:    correct,
	})
	if err != nil {
		log.Printf("answer: %v", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Erro ao registrar resposta")
		return
	}

	feedback := models.AnswerFeedback{
		Correct:     q.Answer,
		Hit:         correct,
		Explanation: q.Explanation,
	}

	answers, err := s.db.SessionAnswers(r.Context(), sess.ID)
	if err != nil {
		log.Printf("answer: %v", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Erro ao registrar resposta")
		return
	}
	answered := make(map[string]bool, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = true
	}
	for _, qid := range sess.QuestionIDs {
		if !answered[qid] {
			if next, ok := s.questions.Get(qid); ok {
				feedback.NextQuestion = &next.Question
			}
			break
		}
	}

	SendSuccessResponse(w, feedback)
}

func (s *Server) FinishStudy(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}

	var req models.FinishStudyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, ok := s.ownedSession(w, r, id, req.SessionID)
	if !ok {
		return
	}
	if sess.Finished {
		SendErrorResponse(w, http.StatusConflict, "Sessão já finalizada")
		return
	}

	if err := s.db.FinishStudySession(r.Context(), sess.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			SendErrorResponse(w, http.StatusConflict, "Sessão já finalizada")
			return
		}
		log.Printf("finish study: %v", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Erro ao finalizar sessão")
		return
	}

	answers, err := s.db.SessionAnswers(r.Context(), sess.ID)
	if err != nil {
		log.Printf("finish study: %v", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Erro ao finalizar sessão")
		return
	}

	summary := models.StudySummary{SessionID: sess.ID, Answered: len(answers)}
	for _, a := range answers {
		if a.Correct {
			summary.Correct++
		}
	}
	summary.Score = database.Percent(summary.Correct, summary.Answered)

	SendSuccessResponse(w, summary)
}

// ownedSession loads a session and checks it belongs to the student. Sessions
// of other students are reported as missing.
func (s *Server) ownedSession(w http.ResponseWriter, r *http.Request, studentID, sessionID string) (*database.StudySession, bool) {
	if sessionID == "" {
		SendErrorResponse(w, http.StatusBadRequest, "sessaoId é obrigatório")
		return nil, false
	}

	sess, err := s.db.GetStudySession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			SendErrorResponse(w, http.StatusNotFound, "Sessão não encontrada")
			return nil, false
		}
		log.Printf("load session: %v", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Erro ao carregar sessão")
		return nil, false
	}
	if sess.StudentID != studentID {
		SendErrorResponse(w, http.StatusNotFound, "Sessão não encontrada")
		return nil, false
	}
	return sess, true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
