package models

// Envelope is the {success, data, message} wrapper every backend endpoint
// answers with.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the body the backend sends on a non-2xx status.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type StartStudyRequest struct {
	ContextType string `json:"contextType"`
}

type AnswerRequest struct {
	SessionID  string `json:"sessaoId"`
	QuestionID string `json:"questaoId"`
	Answer     string `json:"resposta"`
}

type FinishStudyRequest struct {
	SessionID string `json:"sessaoId"`
}

// Question is a single multiple-choice item. Alternatives are keyed by letter.
type Question struct {
	ID           string            `json:"id"`
	Statement    string            `json:"enunciado"`
	Alternatives map[string]string `json:"alternativas"`
	Difficulty   string            `json:"dificuldade"`
	Area         string            `json:"area"`
}

type StudySession struct {
	SessionID string    `json:"sessaoId"`
	Question  *Question `json:"questao"`
}

// AnswerFeedback is returned for each answer. Correct is the letter of the
// right alternative and Hit tells whether the student chose it. NextQuestion
// is nil when the session has no more questions.
type AnswerFeedback struct {
	Correct      string    `json:"correta"`
	Hit          bool      `json:"acertou"`
	Explanation  string    `json:"explicacao"`
	NextQuestion *Question `json:"proximaQuestao,omitempty"`
}

type StudySummary struct {
	SessionID string  `json:"sessaoId"`
	Answered  int     `json:"questoesRespondidas"`
	Correct   int     `json:"acertos"`
	Score     float64 `json:"aproveitamento"`
}

type StartDraftRequest struct {
	Type string `json:"tipo"`
}

type EvaluateDraftRequest struct {
	DraftID string `json:"pecaId"`
	Content string `json:"conteudo"`
}

type DocumentDraft struct {
	DraftID      string `json:"pecaId"`
	Type         string `json:"tipo"`
	Instructions string `json:"enunciado"`
}

// Evaluation is the grade of a document draft. Grade is nil and the lists
// are nil when the backend leaves them out.
type Evaluation struct {
	Grade       *float64 `json:"nota,omitempty"`
	Positives   []string `json:"pontosPositivos"`
	Negatives   []string `json:"pontosNegativos"`
	Suggestions string   `json:"sugestoes"`
}

type StudentInfo struct {
	Name  string `json:"nome"`
	Email string `json:"email"`
	Plan  string `json:"plano"`
}

type Statistics struct {
	SessionsCompleted  int     `json:"sessoesRealizadas"`
	QuestionsAnswered  int     `json:"questoesRespondidas"`
	Score              float64 `json:"aproveitamento"`
	DocumentsCompleted int     `json:"pecasConcluidas"`
}

type ActiveLimits struct {
	SessionsPerDay      int `json:"sessoesPorDia"`
	SessionsUsed        int `json:"sessoesUsadas"`
	QuestionsPerSession int `json:"questoesPorSessao"`
}

// Dashboard is the student's summary panel.
type Dashboard struct {
	Student    StudentInfo  `json:"estudante"`
	Statistics Statistics   `json:"estatisticas"`
	Limits     ActiveLimits `json:"limitesAtivos"`
}

type AreaScore struct {
	Area     string  `json:"area"`
	Answered int     `json:"respondidas"`
	Correct  int     `json:"acertos"`
	Score    float64 `json:"aproveitamento"`
}

// Report is a time-windowed view of the student's progress.
type Report struct {
	Period            string      `json:"periodo"`
	SessionsCompleted int         `json:"sessoesRealizadas"`
	QuestionsAnswered int         `json:"questoesRespondidas"`
	Score             float64     `json:"aproveitamento"`
	ByArea            []AreaScore `json:"porArea"`
}

type HealthStatus struct {
	Status string `json:"status"`
}

type ChatRequest struct {
	UserName    string `json:"userName"`
	Message     string `json:"message"`
	ContextType string `json:"contextType"`
}

type ChatReply struct {
	Message string `json:"message"`
}
