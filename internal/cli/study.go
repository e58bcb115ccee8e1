package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"oabstudy/internal/client"
	"oabstudy/internal/models"
)

// quitWord ends a study session early.
const quitWord = "sair"

// maxAnswerAttempts bounds consecutive failed submissions of one answer.
const maxAnswerAttempts = 3

// retryable reports whether resubmitting the same answer can help. A 2xx body
// that cannot be read will not change on retry.
func retryable(err error) bool {
	return !client.IsUnauthorized(err) && !client.IsOffline(err) && !client.IsDecode(err)
}

func runStudy(ctx context.Context, a *App, args []string) int {
	fs := a.flagSet("estudo")
	contextType := fs.String("contexto", client.DefaultContextType, "contexto da sessão")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	started, err := a.Client.StartStudySession(ctx, *contextType)
	if err != nil {
		return a.fail("Erro ao iniciar sessão", err)
	}
	if !started.Success || started.Data.Question == nil {
		fmt.Fprintln(a.Err, "Nenhuma questão disponível no momento.")
		return 1
	}

	sessionID := started.Data.SessionID
	q := started.Data.Question
	for n, failures := 1, 0; q != nil; {
		printQuestion(a, n, q)

		answer, ok := a.askAnswer(q)
		if !ok {
			break
		}

		fb, err := a.Client.AnswerQuestion(ctx, sessionID, q.ID, answer)
		if err != nil {
			a.fail("Erro ao responder", err)
			failures++
			if retryable(err) && failures < maxAnswerAttempts {
				// same question again
				continue
			}
			return 1
		}
		failures = 0

		if fb.Data.Hit {
			fmt.Fprintln(a.Out, "✔ Correto!")
		} else if fb.Data.Correct != "" {
			fmt.Fprintf(a.Out, "✘ Incorreto. Resposta correta: %s\n", fb.Data.Correct)
		} else {
			fmt.Fprintln(a.Out, "✘ Incorreto")
		}
		if fb.Data.Explanation != "" {
			fmt.Fprintln(a.Out, fb.Data.Explanation)
		}
		q = fb.Data.NextQuestion
		n++
	}

	summary, err := a.Client.FinishStudySession(ctx, sessionID)
	if err != nil {
		return a.fail("Erro ao finalizar sessão", err)
	}
	s := summary.Data
	fmt.Fprintf(a.Out, "\nSessão finalizada: %d/%d acertos (%.1f%%)\n", s.Correct, s.Answered, s.Score)
	return 0
}

func printQuestion(a *App, n int, q *models.Question) {
	fmt.Fprintf(a.Out, "\nQuestão %d · %s", n, q.Area)
	if q.Difficulty != "" {
		fmt.Fprintf(a.Out, " · %s", q.Difficulty)
	}
	fmt.Fprintf(a.Out, "\n%s\n", q.Statement)
	for _, letter := range sortedKeys(q.Alternatives) {
		fmt.Fprintf(a.Out, "  %s) %s\n", letter, q.Alternatives[letter])
	}
}

// askAnswer reads until a valid alternative is typed. ok is false on EOF or
// when the student types "sair".
func (a *App) askAnswer(q *models.Question) (string, bool) {
	for {
		fmt.Fprintf(a.Out, "Resposta (ou %q): ", quitWord)
		line, ok := a.readLine()
		if !ok {
			return "", false
		}
		if strings.EqualFold(line, quitWord) {
			return "", false
		}

		letter := strings.ToUpper(line)
		if _, valid := q.Alternatives[letter]; valid {
			return letter, true
		}
		fmt.Fprintf(a.Out, "Alternativa inválida. Opções: %s\n", strings.Join(sortedKeys(q.Alternatives), ", "))
	}
}

var documentTypeNames = map[string]string{
	"peticao_inicial": "Petição Inicial",
	"contestacao":     "Contestação",
	"recurso":         "Recurso",
	"parecer":         "Parecer Jurídico",
}

func runDocument(ctx context.Context, a *App, args []string) int {
	fs := a.flagSet("peca")
	docType := fs.String("tipo", "", "peticao_inicial | contestacao | recurso | parecer")
	file := fs.String("arquivo", "", "arquivo com o texto da peça (entrada padrão se omitido)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if _, ok := documentTypeNames[*docType]; !ok {
		fmt.Fprintf(a.Err, "Tipo de peça inválido: %q. Opções: %s\n", *docType, strings.Join(documentTypeKeys(), ", "))
		return 2
	}

	draft, err := a.Client.StartDocumentDraft(ctx, *docType)
	if err != nil {
		return a.fail("Erro ao iniciar peça", err)
	}
	if draft.Data.Instructions != "" {
		fmt.Fprintf(a.Out, "%s: %s\n", documentTypeNames[*docType], draft.Data.Instructions)
	}

	content, err := a.readContent(*file)
	if err != nil {
		fmt.Fprintf(a.Err, "Erro ao ler peça: %v\n", err)
		return 1
	}
	if strings.TrimSpace(content) == "" {
		fmt.Fprintln(a.Err, "A peça está vazia.")
		return 1
	}

	res, err := a.Client.EvaluateDocument(ctx, draft.Data.DraftID, content)
	if err != nil {
		return a.fail("Erro ao avaliar peça", err)
	}

	printEvaluation(a, res.Data)
	return 0
}

// Shown when the backend leaves a part of the evaluation out.
const (
	defaultGrade       = 8.5
	defaultSuggestions = "Continue praticando! Sua peça está no caminho certo. Considere revisar os requisitos formais específicos do tipo de peça escolhida."
)

var (
	defaultPositives = []string{
		"Estrutura formal adequada",
		"Fundamentação jurídica presente",
		"Linguagem técnica apropriada",
	}
	defaultNegatives = []string{
		"Pode aprofundar a fundamentação legal",
		"Considere adicionar mais jurisprudência",
	}
)

func printEvaluation(a *App, ev models.Evaluation) {
	grade := defaultGrade
	if ev.Grade != nil && *ev.Grade != 0 {
		grade = *ev.Grade
	}
	positives := ev.Positives
	if positives == nil {
		positives = defaultPositives
	}
	negatives := ev.Negatives
	if negatives == nil {
		negatives = defaultNegatives
	}
	suggestions := ev.Suggestions
	if suggestions == "" {
		suggestions = defaultSuggestions
	}

	fmt.Fprintf(a.Out, "Nota: %.1f/10\n", grade)
	printList(a, "Pontos positivos", positives)
	printList(a, "Pontos de melhoria", negatives)
	fmt.Fprintf(a.Out, "Sugestões: %s\n", suggestions)
}

func (a *App) readContent(path string) (string, error) {
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	fmt.Fprintln(a.Out, "Digite a peça e termine com uma linha contendo apenas \".\":")
	var sb strings.Builder
	for {
		line, ok := a.readLine()
		if !ok || line == "." {
			break
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func printList(a *App, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(a.Out, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(a.Out, "  - %s\n", item)
	}
}

func documentTypeKeys() []string {
	return sortedKeys(documentTypeNames)
}
