package cli

import (
	"fmt"

	"github.com/dmitrijs2005/healthplanner/internal/client/session"
)

// getStatus renders the prompt badge: the username when signed in, a
// marker while the stored session is being restored, nothing otherwise.
func (a *App) getStatus() string {
	s := a.session.Current()
	switch {
	case s.Authenticated():
		return fmt.Sprintf("(%s)", s.Username())
	case s.Status == session.StatusRestoring:
		return "(restoring…)"
	}
	return ""
}
