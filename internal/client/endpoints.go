package client

import (
	"context"
	"net/http"
	"net/url"

	"oabstudy/internal/models"
)

// Defaults applied when the caller leaves an argument empty.
const (
	DefaultContextType  = "oab"
	DefaultReportPeriod = "30d"
)

// RegisterInput is the data collected by the sign-up form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Login exchanges credentials for a token. It does not store the token;
// callers decide whether to SetToken.
func (c *Client) Login(ctx context.Context, email, password string) (*models.Envelope[models.AuthResponse], error) {
	return call[models.AuthResponse](ctx, c, "/auth/login", RequestOptions{
		Method: http.MethodPost,
		Body:   models.LoginRequest{Email: email, Password: password},
	})
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (*models.Envelope[models.RegisterResponse], error) {
	return call[models.RegisterResponse](ctx, c, "/auth/register", RequestOptions{
		Method: http.MethodPost,
		Body:   models.RegisterRequest{Name: in.Name, Email: in.Email, Password: in.Password},
	})
}

// StartStudySession opens a question session. An empty contextType means "oab".
func (c *Client) StartStudySession(ctx context.Context, contextType string) (*models.Envelope[models.StudySession], error) {
	if contextType == "" {
		contextType = DefaultContextType
	}
	return call[models.StudySession](ctx, c, "/estudo/iniciar", RequestOptions{
		Method: http.MethodPost,
		Body:   models.StartStudyRequest{ContextType: contextType},
	})
}

func (c *Client) AnswerQuestion(ctx context.Context, sessionID, questionID, answer string) (*models.Envelope[models.AnswerFeedback], error) {
	return call[models.AnswerFeedback](ctx, c, "/estudo/responder", RequestOptions{
		Method: http.MethodPost,
		Body:   models.AnswerRequest{SessionID: sessionID, QuestionID: questionID, Answer: answer},
	})
}

func (c *Client) FinishStudySession(ctx context.Context, sessionID string) (*models.Envelope[models.StudySummary], error) {
	return call[models.StudySummary](ctx, c, "/estudo/finalizar", RequestOptions{
		Method: http.MethodPost,
		Body:   models.FinishStudyRequest{SessionID: sessionID},
	})
}

func (c *Client) StartDocumentDraft(ctx context.Context, docType string) (*models.Envelope[models.DocumentDraft], error) {
	return call[models.DocumentDraft](ctx, c, "/peca/iniciar", RequestOptions{
		Method: http.MethodPost,
		Body:   models.StartDraftRequest{Type: docType},
	})
}

func (c *Client) EvaluateDocument(ctx context.Context, draftID, content string) (*models.Envelope[models.Evaluation], error) {
	return call[models.Evaluation](ctx, c, "/peca/avaliar", RequestOptions{
		Method: http.MethodPost,
		Body:   models.EvaluateDraftRequest{DraftID: draftID, Content: content},
	})
}

func (c *Client) GetDashboard(ctx context.Context) (*models.Envelope[models.Dashboard], error) {
	return call[models.Dashboard](ctx, c, "/estudante/painel", RequestOptions{})
}

// GetReport fetches the report for period (e.g. "7d", "30d"); empty means 30d.
func (c *Client) GetReport(ctx context.Context, period string) (*models.Envelope[models.Report], error) {
	if period == "" {
		period = DefaultReportPeriod
	}
	return call[models.Report](ctx, c, "/estudante/relatorio?periodo="+url.QueryEscape(period), RequestOptions{})
}

// Health probes the backend. Only the error matters: nil means online.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.Request(ctx, "/health", RequestOptions{})
	return err
}
