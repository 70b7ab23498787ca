package cli

import (
	"context"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/healthplanner/internal/client/apitest"
	"github.com/dmitrijs2005/healthplanner/internal/client/models"
	"github.com/dmitrijs2005/healthplanner/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)
	env.srv.AddUser("alice", "alice@example.org", "secret")
	stubAnswers(t, "secret", "alice")

	require.NoError(t, env.app.Login(context.Background()))

	assert.True(t, env.app.isLoggedIn())
	assert.NotEmpty(t, env.store.stored())
	assert.Contains(t, out.String(), "Welcome, alice!")
}

func TestLogin_WrongPasswordShowsDetail(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)
	env.srv.AddUser("alice", "alice@example.org", "secret")
	stubAnswers(t, "nope", "alice")

	require.Error(t, env.app.Login(context.Background()))

	assert.False(t, env.app.isLoggedIn())
	assert.Empty(t, env.store.stored())
	assert.Contains(t, out.String(), "Incorrect username or password")
}

func TestLogin_ServerDownShowsFallback(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)
	env.srv.Close()
	stubAnswers(t, "secret", "alice")

	require.Error(t, env.app.Login(context.Background()))
	assert.Contains(t, out.String(), "Login failed")
}

func TestRegister_CreatesLogsInAndOpensEditor(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)
	stubAnswers(t, "secret",
		"carol", "carol@example.org", // account
		"29", "female", "58", "165", "vegetarian, low-carb", "", // profile form
	)

	require.NoError(t, env.app.Register(context.Background()))

	assert.Equal(t, "carol", env.ctl.Current().Username())
	assert.Contains(t, out.String(), "Account created")
	assert.Contains(t, out.String(), "Profile saved!")

	p, ok := env.srv.Profile("carol")
	require.True(t, ok)
	assert.Equal(t, models.Profile{
		Age:                29,
		Gender:             models.GenderFemale,
		Weight:             58,
		Height:             165,
		DietaryPreferences: []string{"vegetarian", "low-carb"},
		ExistingConditions: []string{},
	}, p)
}

func TestRegister_DuplicateShowsDetailAndSkipsLogin(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)
	env.srv.AddUser("dave", "dave@example.org", "secret")
	stubAnswers(t, "pw", "dave", "new@example.org")

	require.Error(t, env.app.Register(context.Background()))

	assert.Contains(t, out.String(), "Username already registered")
	assert.Zero(t, env.srv.Calls(apitest.PathLogin))
	assert.False(t, env.app.isLoggedIn())
}

func TestRegister_LoginFailureAfterCreation(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)
	env.srv.Fail(apitest.PathLogin, http.StatusServiceUnavailable, "Try again later")
	stubAnswers(t, "pw", "erin", "erin@example.org")

	err := env.app.Register(context.Background())
	require.ErrorIs(t, err, session.ErrLoginAfterRegister)

	assert.Contains(t, out.String(), "Account created, but signing in failed: Try again later")
	assert.Contains(t, out.String(), "Type login to try again.")
	assert.Equal(t, 1, env.srv.Calls(apitest.PathRegister))
}

func TestLogout(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)
	env.signIn(t, "alice")
	calls := len(env.srv.Requests())

	require.NoError(t, env.app.Logout(context.Background()))

	assert.False(t, env.app.isLoggedIn())
	assert.Empty(t, env.store.stored())
	assert.Len(t, env.srv.Requests(), calls, "logout must not touch the network")
	assert.Contains(t, out.String(), "Logged out.")
	assert.Contains(t, out.String(), helpAnonymous)
}
