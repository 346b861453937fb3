package client

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/MKhiriev/go-fleet-keeper/internal/adapter"
	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

// SessionEnv is the environment variable holding a saved session token.
const SessionEnv = "FLEET_SESSION"

// Usage lists the supported commands.
const Usage = `commands:
  version
  register <email> <username> <name> <password>
  login <email|username> <password> [redirect-to]
  logout
  me
  passwd <current-password> <new-password>
  users
  create-user <email> <username> <name> <password> [role]
  set-role <user-id> <role>
  reset-password <user-id> <password>
  delete-user <user-id>`

type command struct {
	minArgs, maxArgs int
	run              func(ctx context.Context, args []string) error
}

type App struct {
	auth adapter.AuthClient
	out  io.Writer

	commands map[string]command

	logger *logger.Logger
}

// NewApp returns a client that resumes the session in token, if any, and
// writes command output to out.
func NewApp(auth adapter.AuthClient, token string, out io.Writer, logger *logger.Logger) *App {
	if token != "" {
		auth.SetToken(token)
	}

	a := &App{auth: auth, out: out, logger: logger}
	a.commands = map[string]command{
		"version":        {0, 0, a.version},
		"register":       {4, 4, a.register},
		"login":          {2, 3, a.login},
		"logout":         {0, 0, a.logout},
		"me":             {0, 0, a.me},
		"passwd":         {2, 2, a.changePassword},
		"users":          {0, 0, a.listUsers},
		"create-user":    {4, 5, a.createUser},
		"set-role":       {2, 2, a.setRole},
		"reset-password": {2, 2, a.resetPassword},
		"delete-user":    {1, 1, a.deleteUser},
	}
	return a
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrNoCommand
	}

	name, rest := args[0], args[1:]
	cmd, ok := a.commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if len(rest) < cmd.minArgs || len(rest) > cmd.maxArgs {
		return fmt.Errorf("%w for %s", ErrWrongArguments, name)
	}

	a.logger.Debug().Str("command", name).Msg("running client command")
	return cmd.run(ctx, rest)
}

func (a *App) version(ctx context.Context, _ []string) error {
	info, err := a.auth.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "server version: %s\n", info.Version)
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	resp, err := a.auth.Register(ctx, models.NewUser{
		Email:    args[0],
		Username: args[1],
		Name:     args[2],
		Password: args[3],
	})
	if err != nil {
		return err
	}
	a.printSignedIn(resp)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	var redirectTo string
	if len(args) == 3 {
		redirectTo = args[2]
	}

	resp, err := a.auth.Login(ctx, args[0], args[1], redirectTo)
	if err != nil {
		return err
	}
	a.printSignedIn(resp)
	return nil
}

func (a *App) printSignedIn(resp models.LoginResponse) {
	fmt.Fprintf(a.out, "signed in as %s (%s)\n", resp.User.Username, resp.User.Role)
	fmt.Fprintf(a.out, "continue at: %s\n", resp.RedirectTo)
	fmt.Fprintf(a.out, "%s=%s\n", SessionEnv, a.auth.Token())
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "signed out")
	return nil
}

func (a *App) me(ctx context.Context, _ []string) error {
	user, err := a.auth.Me(ctx)
	if err != nil {
		return err
	}
	return a.printUsers(user)
}

func (a *App) changePassword(ctx context.Context, args []string) error {
	if err := a.auth.ChangePassword(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "password changed")
	return nil
}

func (a *App) listUsers(ctx context.Context, _ []string) error {
	users, err := a.auth.ListUsers(ctx)
	if err != nil {
		return err
	}
	return a.printUsers(users...)
}

func (a *App) createUser(ctx context.Context, args []string) error {
	newUser := models.NewUser{
		Email:    args[0],
		Username: args[1],
		Name:     args[2],
		Password: args[3],
	}
	if len(args) == 5 {
		newUser.Role = models.Role(args[4])
	}

	user, err := a.auth.CreateUser(ctx, newUser)
	if err != nil {
		return err
	}
	return a.printUsers(user)
}

func (a *App) setRole(ctx context.Context, args []string) error {
	user, err := a.auth.UpdateRole(ctx, args[0], models.Role(args[1]))
	if err != nil {
		return err
	}
	return a.printUsers(user)
}

func (a *App) resetPassword(ctx context.Context, args []string) error {
	if err := a.auth.ResetPassword(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "password reset")
	return nil
}

func (a *App) deleteUser(ctx context.Context, args []string) error {
	if err := a.auth.DeleteUser(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "user deleted")
	return nil
}

func (a *App) printUsers(users ...models.PublicUser) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tNAME\tROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Name, u.Role)
	}
	return tw.Flush()
}
