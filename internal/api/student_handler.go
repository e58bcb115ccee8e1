package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"oabstudy/internal/database"
	"oabstudy/internal/models"
)

func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}

	student, err := s.db.GetStudent(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			SendErrorResponse(w, http.StatusUnauthorized, "Estudante não encontrado")
			return
		}
		log.Printf("dashboard: %v", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Erro ao carregar painel")
		return
	}

	stats, err := s.db.StudentStats(r.Context(), id, time.Time{})
	if err != nil {
		log.Printf("dashboard: %v", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Erro ao carregar painel")
		return
	}

	usedToday, err := s.db.SessionsStartedSince(r.Context(), id, startOfDay(time.Now()))
	if err != nil {
		log.Printf("dashboard: %v", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Erro ao carregar painel")
		return
	}

	SendSuccessResponse(w, models.Dashboard{
		Student: models.StudentInfo{Name: student.Name, Email: student.Email, Plan: student.Plan},
		Statistics: models.Statistics{
			SessionsCompleted:  stats.SessionsCompleted,
			QuestionsAnswered:  stats.QuestionsAnswered,
			Score:              database.Percent(stats.CorrectAnswers, stats.QuestionsAnswered),
			DocumentsCompleted: stats.DocumentsCompleted,
		},
		Limits: models.ActiveLimits{
			SessionsPerDay:      SessionsPerDay,
			SessionsUsed:        usedToday,
			QuestionsPerSession: QuestionsPerSession,
		},
	})
}

func (s *Server) Report(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}

	period := r.URL.Query().Get("periodo")
	if period == "" {
		period = "30d"
	}
	days, err := parsePeriod(period)
	if err != nil {
		SendErrorResponse(w, http.StatusBadRequest, "Período inválido")
		return
	}

	stats, err := s.db.StudentStats(r.Context(), id, time.Now().AddDate(0, 0, -days))
	if err != nil {
		log.Printf("report: %v", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Erro ao gerar relatório")
		return
	}

	report := models.Report{
		Period:            period,
		SessionsCompleted: stats.SessionsCompleted,
		QuestionsAnswered: stats.QuestionsAnswered,
		Score:             database.Percent(stats.CorrectAnswers, stats.QuestionsAnswered),
		ByArea:            make([]models.AreaScore, 0, len(stats.ByArea)),
	}
	for _, a := range stats.ByArea {
		report.ByArea = append(report.ByArea, models.AreaScore{
			Area:     a.Area,
			Answered: a.Answered,
			Correct:  a.Correct,
			Score:    database.Percent(a.Correct, a.Answered),
		})
	}

	SendSuccessResponse(w, report)
}

// parsePeriod accepts "<n>d" with 1 <= n <= 365.
func parsePeriod(p string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(p, "d"))
	if err != nil || !strings.HasSuffix(p, "d") || n < 1 || n > 365 {
		return 0, errors.New("invalid period")
	}
	return n, nil
}
