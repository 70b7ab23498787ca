package client

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/healthplanner/internal/client/credentials"
	"github.com/dmitrijs2005/healthplanner/internal/logging"
	"github.com/google/uuid"
)

const (
	authorizationHeader = "Authorization"
	requestIDHeader     = "X-Request-ID"
)

// credentialError reports that the credential store could not be read, as
// opposed to the server being unreachable.
type credentialError struct {
	err error
}

func (e *credentialError) Error() string { return fmt.Sprintf("read credential: %v", e.err) }
func (e *credentialError) Unwrap() error { return e.err }

// authTransport attaches the stored credential to every outbound request.
// The store is read per request, so a credential persisted a moment ago is
// picked up by the very next call.
type authTransport struct {
	store  credentials.Store
	next   http.RoundTripper
	logger logging.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	token, ok, err := t.store.Get(ctx)
	if err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, &credentialError{err: err}
	}

	// RoundTrippers must not modify the caller's request.
	out := req.Clone(ctx)
	if ok {
		out.Header.Set(authorizationHeader, "Bearer "+token)
	}
	if out.Header.Get(requestIDHeader) == "" {
		out.Header.Set(requestIDHeader, uuid.NewString())
	}

	t.logger.Debug(ctx, "api request",
		"method", out.Method,
		"path", out.URL.Path,
		"request_id", out.Header.Get(requestIDHeader),
		"authorized", ok,
	)

	return t.next.RoundTrip(out)
}
