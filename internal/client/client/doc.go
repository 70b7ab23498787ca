// Package client talks to the health planning REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Login/Me/Register for identity, GetProfile/SaveProfile for the health
//     profile, WorkoutPlan/MealPlan for generated plans.
//  2. A concrete HTTP implementation (see HTTPClient) whose round tripper
//     reads the credential store on every request and attaches the stored
//     credential as a bearer token. Callers never set Authorization
//     themselves.
//
// # Error Handling
//
// Non-2xx responses become *APIError carrying the server's detail message.
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnauthorized, ErrUnavailable. DetailOf turns any error
// into the text shown to the user.
//
// The client does not retry and does not react to 401 responses; they are
// returned to the caller as-is.
package client
