package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oabstudy/internal/auth"
	"oabstudy/internal/client"
	"oabstudy/internal/database"
	"oabstudy/internal/session"
)

type testEnv struct {
	srv    *httptest.Server
	bank   *QuestionBank
	client *client.Client
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bank := DefaultQuestionBank()
	s := NewServer(db, auth.NewIssuer("test-secret", time.Hour), bank)
	srv := httptest.NewServer(SetupRouter(s, nil, false))
	t.Cleanup(srv.Close)

	c, err := client.New(context.Background(), client.Options{BaseURL: srv.URL}, session.NewMemoryStore())
	require.NoError(t, err)

	return &testEnv{srv: srv, bank: bank, client: c}
}

func (e *testEnv) registerAndLogin(t *testing.T, email string) {
	t.Helper()
	ctx := context.Background()

	reg, err := e.client.Register(ctx, client.RegisterInput{Name: "Ana", Email: email, Password: "secret1"})
	require.NoError(t, err)
	require.True(t, reg.Success)
	require.NotEmpty(t, reg.Data.ID)

	res, err := e.client.Login(ctx, email, "secret1")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.NotEmpty(t, res.Data.Token)
	require.NoError(t, e.client.SetToken(ctx, res.Data.Token))
}

func TestHealth(t *testing.T) {
	env := setupTestEnv(t)
	assert.NoError(t, env.client.Health(context.Background()))
}

func TestRegisterValidation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		in      client.RegisterInput
		wantMsg string
	}{
		{name: "missing name", in: client.RegisterInput{Email: "a@b.com", Password: "secret1"}, wantMsg: "Nome, email e senha são obrigatórios"},
		{name: "bad email", in: client.RegisterInput{Name: "A", Email: "nope", Password: "secret1"}, wantMsg: "Email inválido"},
		{name: "short password", in: client.RegisterInput{Name: "A", Email: "a@b.com", Password: "123"}, wantMsg: "A senha deve ter pelo menos 6 caracteres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.client.Register(ctx, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}

	_, err := env.client.Register(ctx, client.RegisterInput{Name: "A", Email: "dup@b.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = env.client.Register(ctx, client.RegisterInput{Name: "B", Email: "dup@b.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, "Email já cadastrado", err.Error())
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.client.Register(ctx, client.RegisterInput{Name: "A", Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	res, err := env.client.Login(ctx, "a@b.com", "wrong-pass")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, client.IsUnauthorized(err))
	assert.False(t, env.client.Authenticated())
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.client.GetDashboard(ctx)
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))

	require.NoError(t, env.client.SetToken(ctx, "not-a-valid-token"))
	_, err = env.client.GetDashboard(ctx)
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))
	// rejection does not drop the token
	assert.True(t, env.client.Authenticated())
}

func TestStudyFlow(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.registerAndLogin(t, "ana@x.com")

	started, err := env.client.StartStudySession(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, started.Data.SessionID)
	require.NotNil(t, started.Data.Question)

	sessionID := started.Data.SessionID
	q := started.Data.Question
	answered, correct := 0, 0
	for q != nil {
		key, ok := env.bank.Get(q.ID)
		require.True(t, ok)

		// answer correctly every other question
		answer := key.Answer
		if answered%2 == 1 {
			for letter := range q.Alternatives {
				if letter != key.Answer {
					answer = letter
					break
				}
			}
		} else {
			correct++
		}

		fb, err := env.client.AnswerQuestion(ctx, sessionID, q.ID, strings.ToLower(answer))
		require.NoError(t, err)
		assert.Equal(t, answer == key.Answer, fb.Data.Hit)
		assert.Equal(t, key.Answer, fb.Data.Correct)
		answered++
		q = fb.Data.NextQuestion
	}
	assert.Equal(t, QuestionsPerSession, answered)

	summary, err := env.client.FinishStudySession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, answered, summary.Data.Answered)
	assert.Equal(t, correct, summary.Data.Correct)

	_, err = env.client.FinishStudySession(ctx, sessionID)
	require.Error(t, err)
	assert.Equal(t, "Sessão já finalizada", err.Error())

	dash, err := env.client.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", dash.Data.Student.Name)
	assert.Equal(t, 1, dash.Data.Statistics.SessionsCompleted)
	assert.Equal(t, answered, dash.Data.Statistics.QuestionsAnswered)
	assert.Equal(t, 1, dash.Data.Limits.SessionsUsed)
	assert.Equal(t, SessionsPerDay, dash.Data.Limits.SessionsPerDay)

	report, err := env.client.GetReport(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "30d", report.Data.Period)
	assert.Equal(t, answered, report.Data.QuestionsAnswered)
	assert.NotEmpty(t, report.Data.ByArea)
}

func TestAnswerRejectsForeignInput(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.registerAndLogin(t, "ana@x.com")

	started, err := env.client.StartStudySession(ctx, "oab")
	require.NoError(t, err)
	sid := started.Data.SessionID
	qid := started.Data.Question.ID

	_, err = env.client.AnswerQuestion(ctx, sid, qid, "Z")
	require.Error(t, err)
	assert.Equal(t, "Alternativa inválida", err.Error())

	_, err = env.client.AnswerQuestion(ctx, "missing", qid, "A")
	require.Error(t, err)
	assert.Equal(t, "Sessão não encontrada", err.Error())

	// another student cannot see the session
	other := setupOtherClient(t, env)
	_, err = other.AnswerQuestion(ctx, sid, qid, "A")
	require.Error(t, err)
	assert.Equal(t, "Sessão não encontrada", err.Error())
}

func setupOtherClient(t *testing.T, env *testEnv) *client.Client {
	t.Helper()
	ctx := context.Background()

	c, err := client.New(ctx, client.Options{BaseURL: env.srv.URL}, nil)
	require.NoError(t, err)
	_, err = c.Register(ctx, client.RegisterInput{Name: "Bia", Email: "bia@x.com", Password: "secret1"})
	require.NoError(t, err)
	res, err := c.Login(ctx, "bia@x.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, c.SetToken(ctx, res.Data.Token))
	return c
}

func TestDailySessionLimit(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.registerAndLogin(t, "ana@x.com")

	for i := 0; i < SessionsPerDay; i++ {
		_, err := env.client.StartStudySession(ctx, "oab")
		require.NoError(t, err)
	}

	_, err := env.client.StartStudySession(ctx, "oab")
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
}

func TestDocumentFlow(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.registerAndLogin(t, "ana@x.com")

	_, err := env.client.StartDocumentDraft(ctx, "carta")
	require.Error(t, err)
	assert.Equal(t, "Tipo de peça inválido", err.Error())

	draft, err := env.client.StartDocumentDraft(ctx, "parecer")
	require.NoError(t, err)
	assert.Equal(t, "parecer", draft.Data.Type)
	assert.NotEmpty(t, draft.Data.Instructions)

	content := "EMENTA: ...\nRELATÓRIO: ...\nFUNDAMENTAÇÃO: ...\nCONCLUSÃO: ..." + strings.Repeat(" texto", 300)
	ev, err := env.client.EvaluateDocument(ctx, draft.Data.DraftID, content)
	require.NoError(t, err)
	require.NotNil(t, ev.Data.Grade)
	assert.Equal(t, 10.0, *ev.Data.Grade)
	assert.Empty(t, ev.Data.Negatives)
	assert.Len(t, ev.Data.Positives, 4)
	assert.Equal(t, "Peça bem estruturada.", ev.Data.Suggestions)

	// evaluating by type creates the draft on the fly
	ev, err = env.client.EvaluateDocument(ctx, "contestacao", "Excelentíssimo Senhor Juiz")
	require.NoError(t, err)
	require.NotNil(t, ev.Data.Grade)
	assert.Less(t, *ev.Data.Grade, 5.0)
	assert.NotEmpty(t, ev.Data.Negatives)

	_, err = env.client.EvaluateDocument(ctx, "missing", "texto")
	require.Error(t, err)
	assert.Equal(t, "Peça não encontrada", err.Error())

	dash, err := env.client.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, dash.Data.Statistics.DocumentsCompleted)
}

func TestReportRejectsBadPeriod(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.registerAndLogin(t, "ana@x.com")

	for _, p := range []string{"abc", "0d", "30", "999d"} {
		_, err := env.client.GetReport(ctx, p)
		require.Error(t, err, p)
		assert.Equal(t, "Período inválido", err.Error())
	}

	r, err := env.client.GetReport(ctx, "7d")
	require.NoError(t, err)
	assert.Equal(t, "7d", r.Data.Period)
	assert.Empty(t, r.Data.ByArea)
}

func TestEvaluateScoring(t *testing.T) {
	pi, ok := LookupDocumentType("peticao_inicial")
	require.True(t, ok)

	empty := pi.Evaluate("")
	assert.Equal(t, 0.0, *empty.Grade)
	assert.Empty(t, empty.Positives)
	assert.Len(t, empty.Negatives, len(pi.Sections)+1)

	half := pi.Evaluate("Excelentíssimo. Dos fatos. Do direito.")
	assert.InDelta(t, 7*3.0/5, *half.Grade, 0.2)
}

func TestUnknownRoute(t *testing.T) {
	env := setupTestEnv(t)
	_, err := env.client.Request(context.Background(), "/nada", client.RequestOptions{})
	require.Error(t, err)
	assert.Equal(t, "Rota não encontrada", err.Error())
}
