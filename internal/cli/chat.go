package cli

import (
	"context"
	"fmt"
	"strings"

	"oabstudy/internal/client"
)

const (
	chatFailed  = "Desculpe, ocorreu um erro ao processar sua mensagem. Tente novamente."
	chatNoReply = "Desculpe, não consegui processar sua pergunta."
)

func runChat(ctx context.Context, a *App, args []string) int {
	fs := a.flagSet("chat")
	name := fs.String("nome", "Estudante", "nome exibido para a assistente")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if a.Chat == nil {
		fmt.Fprintln(a.Err, "Chat não configurado: defina OAB_CHAT_URL.")
		return 1
	}

	// a message on the command line is sent once; otherwise read until EOF
	if msg := strings.TrimSpace(strings.Join(fs.Args(), " ")); msg != "" {
		a.ask(ctx, *name, msg)
		return 0
	}

	for {
		fmt.Fprint(a.Out, "> ")
		line, ok := a.readLine()
		if !ok {
			return 0
		}
		if line == "" {
			continue
		}
		a.ask(ctx, *name, line)
	}
}

func (a *App) ask(ctx context.Context, name, message string) {
	reply, err := a.Chat.Send(ctx, client.ChatInput{UserName: name, Message: message})
	switch {
	case err != nil:
		fmt.Fprintln(a.Out, chatFailed)
	case reply.Message == "":
		fmt.Fprintln(a.Out, chatNoReply)
	default:
		fmt.Fprintln(a.Out, reply.Message)
	}
}
