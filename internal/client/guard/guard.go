// Package guard decides whether a route may render for the current session.
package guard

import (
	"context"

	"github.com/dmitrijs2005/healthplanner/internal/client/session"
)

type Kind int

const (
	Public Kind = iota
	Protected
)

// LoginRoute is where anonymous visitors of protected routes are sent.
const LoginRoute = "login"

type Route struct {
	Name string
	Kind Kind
}

type Action int

const (
	Render Action = iota
	Redirect
	Hold
)

func (a Action) String() string {
	switch a {
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	case Hold:
		return "hold"
	}
	return "unknown"
}

// Decision is the outcome for one route. For Redirect, To is the
// destination and From the route originally asked for.
type Decision struct {
	Action Action
	To     string
	From   string
}

// Decide is a pure function of the route and the session.
func Decide(r Route, s session.Session) Decision {
	if r.Kind == Public {
		return Decision{Action: Render}
	}
	switch s.Status {
	case session.StatusAuthenticated:
		return Decision{Action: Render}
	case session.StatusRestoring:
		return Decision{Action: Hold}
	default:
		return Decision{Action: Redirect, To: LoginRoute, From: r.Name}
	}
}

// Source is what Guard needs from the session controller.
type Source interface {
	Current() session.Session
	Subscribe(fn func(session.Session)) (unsubscribe func())
}

type Guard struct {
	src Source
}

func New(src Source) *Guard {
	return &Guard{src: src}
}

// Enter returns the final decision for r, waiting for as long as the session
// is being restored. It never returns Hold unless ctx ends first, in which
// case the context error is returned alongside.
func (g *Guard) Enter(ctx context.Context, r Route) (Decision, error) {
	d := Decide(r, g.src.Current())
	if d.Action != Hold {
		return d, nil
	}

	changed := make(chan struct{}, 1)
	unsubscribe := g.src.Subscribe(func(session.Session) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	for {
		// re-read after subscribing so a change in between is not missed
		d = Decide(r, g.src.Current())
		if d.Action != Hold {
			return d, nil
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return d, ctx.Err()
		}
	}
}
