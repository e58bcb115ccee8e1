// Package cli is the command-line front-end. Each subcommand plays the role of
// one page of the student app and is a plain caller of the API client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"oabstudy/internal/client"
)

// App bundles the collaborators a command needs.
type App struct {
	Client *client.Client
	Chat   *client.ChatClient // nil when the chat service is not configured
	In     io.Reader
	Out    io.Writer
	Err    io.Writer

	lines *bufio.Scanner
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, a *App, args []string) int
}

var commands = []command{
	{"status", "verifica se a API está online", runStatus},
	{"login", "entra com email e senha", runLogin},
	{"register", "cria uma conta e entra", runRegister},
	{"logout", "encerra a sessão local", runLogout},
	{"whoami", "mostra a sessão atual", runWhoami},
	{"painel", "mostra o painel do estudante", runDashboard},
	{"relatorio", "mostra o relatório de desempenho", runReport},
	{"estudo", "inicia uma sessão de questões", runStudy},
	{"peca", "envia uma peça para avaliação", runDocument},
	{"chat", "pergunta à assistente", runChat},
}

// Run executes the subcommand in args and returns the process exit code.
func Run(ctx context.Context, a *App, args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.usage()
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	for _, c := range commands {
		if c.name == args[0] {
			return c.run(ctx, a, args[1:])
		}
	}

	fmt.Fprintf(a.Err, "comando desconhecido: %s\n", args[0])
	a.usage()
	return 2
}

func (a *App) usage() {
	fmt.Fprintln(a.Err, "uso: oab <comando> [opções]")
	fmt.Fprintln(a.Err)
	for _, c := range commands {
		fmt.Fprintf(a.Err, "  %-10s %s\n", c.name, c.usage)
	}
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.Err)
	return fs
}

// readLine returns the next line of input, trimmed. ok is false at EOF.
func (a *App) readLine() (string, bool) {
	if a.lines == nil {
		a.lines = bufio.NewScanner(a.In)
	}
	if !a.lines.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.lines.Text()), true
}

// prompt asks for a value when a flag was left empty.
func (a *App) prompt(label string) string {
	fmt.Fprintf(a.Out, "%s: ", label)
	line, _ := a.readLine()
	return line
}

// fail prints an inline error for err and returns exit code 1.
func (a *App) fail(action string, err error) int {
	switch {
	case client.IsUnauthorized(err):
		fmt.Fprintln(a.Err, "Sessão expirada ou inválida. Faça login novamente com `oab login`.")
	case client.IsOffline(err):
		fmt.Fprintf(a.Err, "%s: API indisponível (%v)\n", action, err)
	default:
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(a.Err, "%s: %s\n", action, apiErr.Message)
		} else {
			fmt.Fprintf(a.Err, "%s: %v\n", action, err)
		}
	}
	return 1
}

// rejected reports a 2xx answer whose envelope says success is false.
func (a *App) rejected(action, message string) int {
	if message == "" {
		message = "operação não concluída"
	}
	fmt.Fprintf(a.Err, "%s: %s\n", action, message)
	return 1
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
