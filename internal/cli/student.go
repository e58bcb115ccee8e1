package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"oabstudy/internal/client"
)

func runDashboard(ctx context.Context, a *App, args []string) int {
	res, err := a.Client.GetDashboard(ctx)
	if err != nil {
		return a.fail("Erro ao carregar painel", err)
	}
	if !res.Success {
		return a.rejected("Erro ao carregar painel", res.Message)
	}

	d := res.Data
	fmt.Fprintf(a.Out, "%s <%s> · plano %s\n\n", d.Student.Name, d.Student.Email, d.Student.Plan)

	tw := tabwriter.NewWriter(a.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Sessões realizadas\t%d\n", d.Statistics.SessionsCompleted)
	fmt.Fprintf(tw, "Questões respondidas\t%d\n", d.Statistics.QuestionsAnswered)
	fmt.Fprintf(tw, "Aproveitamento\t%.1f%%\n", d.Statistics.Score)
	fmt.Fprintf(tw, "Peças concluídas\t%d\n", d.Statistics.DocumentsCompleted)
	fmt.Fprintf(tw, "Sessões hoje\t%d/%d\n", d.Limits.SessionsUsed, d.Limits.SessionsPerDay)
	fmt.Fprintf(tw, "Questões por sessão\t%d\n", d.Limits.QuestionsPerSession)
	tw.Flush()
	return 0
}

func runReport(ctx context.Context, a *App, args []string) int {
	fs := a.flagSet("relatorio")
	period := fs.String("periodo", client.DefaultReportPeriod, "janela do relatório, ex.: 7d, 30d")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	res, err := a.Client.GetReport(ctx, *period)
	if err != nil {
		return a.fail("Erro ao carregar relatório", err)
	}
	if !res.Success {
		return a.rejected("Erro ao carregar relatório", res.Message)
	}

	r := res.Data
	fmt.Fprintf(a.Out, "Relatório (%s): %d sessões, %d questões, %.1f%% de aproveitamento\n",
		r.Period, r.SessionsCompleted, r.QuestionsAnswered, r.Score)
	if len(r.ByArea) == 0 {
		return 0
	}

	tw := tabwriter.NewWriter(a.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Área\tRespondidas\tAcertos\tAproveitamento")
	for _, area := range r.ByArea {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\n", area.Area, area.Answered, area.Correct, area.Score)
	}
	tw.Flush()
	return 0
}
