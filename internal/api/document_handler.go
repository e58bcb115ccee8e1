package api

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strings"
	"unicode/utf8"

	"oabstudy/internal/database"
	"oabstudy/internal/models"
)

// DocumentType describes a kind of legal document students can practise.
type DocumentType struct {
	ID           string
	Name         string
	Instructions string
	// Sections are lowercase markers a well-formed document is expected to contain.
	Sections []string
}

var documentTypes = map[string]DocumentType{
	"peticao_inicial": {
		ID:           "peticao_inicial",
		Name:         "Petição Inicial",
		Instructions: "Redija a petição inicial de uma ação de cobrança, indicando fatos, fundamentos e pedidos.",
		Sections:     []string{"excelentíssimo", "dos fatos", "do direito", "dos pedidos", "valor da causa"},
	},
	"contestacao": {
		ID:           "contestacao",
		Name:         "Contestação",
		Instructions: "Apresente a contestação do réu, com preliminares e impugnação do mérito.",
		Sections:     []string{"excelentíssimo", "preliminar", "mérito", "pedidos"},
	},
	"recurso": {
		ID:           "recurso",
		Name:         "Recurso",
		Instructions: "Interponha recurso de apelação contra a sentença, expondo as razões de reforma.",
		Sections:     []string{"tempestividade", "preparo", "razões", "reforma", "pedido"},
	},
	"parecer": {
		ID:           "parecer",
		Name:         "Parecer Jurídico",
		Instructions: "Elabore parecer jurídico fundamentado sobre a consulta apresentada.",
		Sections:     []string{"ementa", "relatório", "fundamentação", "conclusão"},
	},
}

// Documents shorter than this lose points for development.
const targetLength = 1500

// LookupDocumentType returns the document type with the given id.
func LookupDocumentType(id string) (DocumentType, bool) {
	t, ok := documentTypes[id]
	return t, ok
}

// Evaluate grades content from 0 to 10: up to 7 points for the expected
// sections and up to 3 for length.
func (t DocumentType) Evaluate(content string) models.Evaluation {
	lower := strings.ToLower(content)

	ev := models.Evaluation{Positives: []string{}, Negatives: []string{}}
	found := 0
	for _, section := range t.Sections {
		if strings.Contains(lower, section) {
			found++
			ev.Positives = append(ev.Positives, "Contém: "+section)
		} else {
			ev.Negatives = append(ev.Negatives, "Inclua: "+section)
		}
	}

	length := utf8.RuneCountInString(strings.TrimSpace(content))
	lengthScore := 3 * math.Min(float64(length)/targetLength, 1)
	if length < targetLength/3 {
		ev.Negatives = append(ev.Negatives, "Desenvolva melhor a argumentação")
	}

	structureScore := 7 * float64(found) / float64(len(t.Sections))
	grade := math.Round((structureScore+lengthScore)*10) / 10
	ev.Grade = &grade

	switch {
	case grade >= 8:
		ev.Suggestions = "Peça bem estruturada."
	case grade >= 5:
		ev.Suggestions = "Peça aceitável, mas com pontos a melhorar."
	default:
		ev.Suggestions = "Peça incompleta. Revise a estrutura exigida."
	}
	return ev
}

func (s *Server) StartDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}

	var req models.StartDraftRequest
	if !decodeBody(w, r, &req) {
		return
	}

	docType, ok := LookupDocumentType(req.Type)
	if !ok {
		SendErrorResponse(w, http.StatusBadRequest, "Tipo de peça inválido")
		return
	}

	draft, err := s.db.CreateDraft(r.Context(), id, docType.ID)
	if err != nil {
		log.Printf("start draft: %v", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Erro ao iniciar peça")
		return
	}

	SendSuccessResponse(w, models.DocumentDraft{
		DraftID:      draft.ID,
		Type:         docType.ID,
		Instructions: docType.Instructions,
	})
}

// EvaluateDraft grades a draft. pecaId may also be a document type id, in
// which case a new draft of that type is created on the fly.
func (s *Server) EvaluateDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}

	var req models.EvaluateDraftRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		SendErrorResponse(w, http.StatusBadRequest, "Conteúdo da peça é obrigatório")
		return
	}

	draft, err := s.db.GetDraft(r.Context(), req.DraftID)
	if errors.Is(err, database.ErrNotFound) {
		if _, isType := LookupDocumentType(req.DraftID); isType {
			draft, err = s.db.CreateDraft(r.Context(), id, req.DraftID)
		}
	}
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			SendErrorResponse(w, http.StatusNotFound, "Peça não encontrada")
			return
		}
		log.Printf("evaluate draft: %v", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Erro ao avaliar peça")
		return
	}
	if draft.StudentID != id {
		SendErrorResponse(w, http.StatusNotFound, "Peça não encontrada")
		return
	}

	docType, _ := LookupDocumentType(draft.Type)
	ev := docType.Evaluate(req.Content)

	if err := s.db.SaveDraftGrade(r.Context(), draft.ID, *ev.Grade); err != nil {
		log.Printf("evaluate draft: %v", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Erro ao avaliar peça")
		return
	}

	SendSuccessResponse(w, ev)
}
