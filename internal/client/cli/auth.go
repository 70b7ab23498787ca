package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/healthplanner/internal/client/client"
	"github.com/dmitrijs2005/healthplanner/internal/client/session"
	"github.com/dmitrijs2005/healthplanner/internal/client/views"
	"github.com/dmitrijs2005/healthplanner/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, email and password, creates the account
// and signs in with it. On success the user lands on the profile editor.
//
// If the account was created but the follow-up login failed, the user is
// told so and can run login again; the account is not rolled back.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Register(ctx, username, email, string(password)); err != nil {
		if errors.Is(err, session.ErrLoginAfterRegister) {
			printlnFn(views.RenderError("Account created, but signing in failed: " + client.DetailOf(err, "Login failed")))
			printlnFn("Type login to try again.")
			return err
		}
		printlnFn(views.RenderError(client.DetailOf(err, "Registration failed")))
		return err
	}

	printlnFn(views.RenderSuccess("Account created. Welcome, " + username + "!"))
	return a.EditProfile(ctx)
}

// Login prompts for credentials and signs in. The server's detail, if any,
// is shown on failure.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, username, string(password)); err != nil {
		printlnFn(views.RenderError(client.DetailOf(err, "Login failed")))
		return err
	}

	printlnFn(views.RenderSuccess("Welcome, " + a.session.Current().Username() + "!"))
	return nil
}

// Logout signs out locally and goes back to the login entry point. It never
// needs the server.
func (a *App) Logout(ctx context.Context) error {
	err := a.session.Logout(ctx)
	a.draft = nil
	printlnFn("Logged out.")
	printlnFn(helpAnonymous)
	return err
}
