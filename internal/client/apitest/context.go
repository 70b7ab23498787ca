package apitest

import (
	"context"
	"net/http"
)

type ctxKey struct{}

func withUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ctxKey{}, username)
}

func usernameFrom(r *http.Request) string {
	v, _ := r.Context().Value(ctxKey{}).(string)
	return v
}
