// Package session owns the client's authentication state. Controller is the
// only writer; everything else reads a snapshot or subscribes to changes.
package session

import "github.com/dmitrijs2005/healthplanner/internal/client/models"

type Status int

const (
	StatusAnonymous Status = iota
	StatusRestoring
	StatusAuthenticated
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusRestoring:
		return "restoring"
	case StatusAuthenticated:
		return "authenticated"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Session is an immutable snapshot. User is set iff Status is
// StatusAuthenticated; Detail is only meaningful for StatusError.
type Session struct {
	Status Status
	User   *models.User
	Detail string
}

func Anonymous() Session { return Session{Status: StatusAnonymous} }

func Restoring() Session { return Session{Status: StatusRestoring} }

func Authenticated(u models.User) Session {
	return Session{Status: StatusAuthenticated, User: &u}
}

func Failed(detail string) Session {
	return Session{Status: StatusError, Detail: detail}
}

func (s Session) Authenticated() bool { return s.Status == StatusAuthenticated && s.User != nil }

// Username returns the signed in user's name, or "" when there is none.
func (s Session) Username() string {
	if s.User == nil {
		return ""
	}
	return s.User.Username
}
