package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/healthplanner/internal/client/client"
	"github.com/dmitrijs2005/healthplanner/internal/client/guard"
	"github.com/dmitrijs2005/healthplanner/internal/client/session"
	"github.com/dmitrijs2005/healthplanner/internal/client/views"
	"github.com/dmitrijs2005/healthplanner/internal/logging"
)

// sessionController is what the CLI needs from session.Controller.
type sessionController interface {
	Current() session.Session
	Subscribe(fn func(session.Session)) (unsubscribe func())
	Init(ctx context.Context)
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, username, email, password string) error
	Logout(ctx context.Context) error
}

type App struct {
	session sessionController
	guard   *guard.Guard
	api     client.Client
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	// draft is a profile form whose save failed, owned by draftUser. The
	// next editprofile by the same user resumes it instead of prefilling
	// from the server.
	draft     *views.ProfileForm
	draftUser string
}

func NewApp(s sessionController, api client.Client, logger logging.Logger) *App {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &App{
		session: s,
		guard:   guard.New(s),
		api:     api,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// Run restores the session in the background and serves the REPL until the
// user exits or input ends.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to HealthPlanner CLI (type 'help' for commands)")

	restored := make(chan struct{})
	go func() {
		defer close(restored)
		a.session.Init(ctx)
		if s := a.session.Current(); s.Authenticated() {
			a.logger.Debug(ctx, "restored session", "user", s.Username())
		}
	}()

	runREPL(ctx, a, a.getStatus, a.reader)

	// let the restore settle so its store access does not race shutdown
	select {
	case <-restored:
	case <-ctx.Done():
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().Authenticated()
}
