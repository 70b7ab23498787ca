// Package cli provides the interactive healthplanner command-line client.
//
// It wires the session controller, the route guard and the resource views
// into a REPL. On start the stored credential is restored in the background;
// protected commands wait for that to finish instead of bouncing the user to
// the login prompt.
//
// Key features:
//   - Register / Login / Logout
//   - Show the health profile and edit it
//   - Show the generated meal and workout plans
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
