package ctl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

const usage = `Usage: clipforgectl [-addr URL] <command>

Commands:
  register        create an account (prompts for email and password)
  login           obtain an access token (prompts for email and password)
  whoami <token>  show the account behind an access token
                  (the token may also be passed via CLIPFORGE_TOKEN)
`

// App drives the admin CLI: it prompts on in/out and talks to the
// server through client.
type App struct {
	client *Client
	in     *bufio.Reader
	out    io.Writer
}

func NewApp(client *Client, in io.Reader, out io.Writer) *App {
	return &App{client: client, in: bufio.NewReader(in), out: out}
}

// Run dispatches a single command and returns its error, if any.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("no command given")
	}

	switch args[0] {
	case "register":
		return a.register(ctx)
	case "login":
		return a.login(ctx)
	case "whoami":
		return a.whoami(ctx, args[1:])
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func (a *App) register(ctx context.Context) error {
	email, err := promptLine(a.in, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := promptPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.client.Register(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %d)\n", user.Email, user.ID)
	return nil
}

func (a *App) login(ctx context.Context) error {
	email, err := promptLine(a.in, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := promptPassword(a.out)
	if err != nil {
		return err
	}

	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, token.AccessToken)
	return nil
}

func (a *App) whoami(ctx context.Context, args []string) error {
	token := os.Getenv("CLIPFORGE_TOKEN")
	if len(args) > 0 {
		token = args[0]
	}
	if token == "" {
		return fmt.Errorf("no token: pass it as an argument or set CLIPFORGE_TOKEN")
	}

	user, err := a.client.Whoami(ctx, token)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "id:     %d\n", user.ID)
	fmt.Fprintf(a.out, "email:  %s\n", user.Email)
	if name := displayName(user); name != "" {
		fmt.Fprintf(a.out, "name:   %s\n", name)
	}
	fmt.Fprintf(a.out, "active: %t\n", user.IsActive)
	return nil
}

func displayName(user *User) string {
	var parts []string
	if user.FirstName != nil && *user.FirstName != "" {
		parts = append(parts, *user.FirstName)
	}
	if user.LastName != nil && *user.LastName != "" {
		parts = append(parts, *user.LastName)
	}
	return strings.Join(parts, " ")
}
