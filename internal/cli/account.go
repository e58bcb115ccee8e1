package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"oabstudy/internal/auth"
	"oabstudy/internal/client"
)

func runStatus(ctx context.Context, a *App, args []string) int {
	if err := a.Client.Health(ctx); err != nil {
		fmt.Fprintf(a.Out, "API %s: offline\n", a.Client.BaseURL())
		return 0
	}
	fmt.Fprintf(a.Out, "API %s: online\n", a.Client.BaseURL())
	return 0
}

func runLogin(ctx context.Context, a *App, args []string) int {
	fs := a.flagSet("login")
	email := fs.String("email", "", "email da conta")
	password := fs.String("senha", "", "senha (lida da entrada se omitida)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *email == "" {
		*email = a.prompt("Email")
	}
	if *password == "" {
		*password = a.prompt("Senha")
	}

	return a.login(ctx, *email, *password)
}

func (a *App) login(ctx context.Context, email, password string) int {
	res, err := a.Client.Login(ctx, email, password)
	if err != nil {
		if client.IsUnauthorized(err) {
			fmt.Fprintln(a.Err, "Email ou senha inválidos")
			return 1
		}
		return a.fail("Erro ao fazer login", err)
	}
	if !res.Success || res.Data.Token == "" {
		fmt.Fprintln(a.Err, "Email ou senha inválidos")
		return 1
	}

	if err := a.Client.SetToken(ctx, res.Data.Token); err != nil {
		return a.fail("Erro ao salvar sessão", err)
	}
	fmt.Fprintln(a.Out, "Login realizado com sucesso.")
	return 0
}

func runRegister(ctx context.Context, a *App, args []string) int {
	fs := a.flagSet("register")
	name := fs.String("nome", "", "nome completo")
	email := fs.String("email", "", "email")
	password := fs.String("senha", "", "senha (lida da entrada se omitida)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *name == "" {
		*name = a.prompt("Nome")
	}
	if *email == "" {
		*email = a.prompt("Email")
	}
	if *password == "" {
		*password = a.prompt("Senha")
	}

	res, err := a.Client.Register(ctx, client.RegisterInput{Name: *name, Email: *email, Password: *password})
	if err != nil {
		return a.fail("Erro ao cadastrar", err)
	}
	if !res.Success {
		fmt.Fprintln(a.Err, "Não foi possível concluir o cadastro")
		return 1
	}
	fmt.Fprintln(a.Out, "Cadastro realizado.")

	return a.login(ctx, *email, *password)
}

func runLogout(ctx context.Context, a *App, args []string) int {
	if err := a.Client.ClearToken(ctx); err != nil {
		return a.fail("Erro ao encerrar sessão", err)
	}
	fmt.Fprintln(a.Out, "Sessão encerrada.")
	return 0
}

func runWhoami(ctx context.Context, a *App, args []string) int {
	if !a.Client.Authenticated() {
		fmt.Fprintln(a.Out, "Não autenticado.")
		return 0
	}

	claims, err := auth.Inspect(a.Client.Token())
	if errors.Is(err, auth.ErrNotJWT) {
		fmt.Fprintln(a.Out, "Autenticado (token sem informações legíveis).")
		return 0
	}
	if err != nil {
		return a.fail("Erro ao ler token", err)
	}

	fmt.Fprintf(a.Out, "Autenticado como %s\n", claims.Email)
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		if claims.Expired(time.Now()) {
			fmt.Fprintf(a.Out, "Token expirado em %s\n", exp.Local().Format("02/01/2006 15:04"))
		} else {
			fmt.Fprintf(a.Out, "Token válido até %s\n", exp.Local().Format("02/01/2006 15:04"))
		}
	}
	return 0
}
