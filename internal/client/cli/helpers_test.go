package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/healthplanner/internal/client/apitest"
	"github.com/dmitrijs2005/healthplanner/internal/client/client"
	"github.com/dmitrijs2005/healthplanner/internal/client/session"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu    sync.Mutex
	token string
}

func (m *memStore) Get(context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != "", nil
}

func (m *memStore) Set(_ context.Context, v string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = v
	return nil
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func (m *memStore) stored() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// output collects everything printed through printlnFn.
type output struct {
	mu    sync.Mutex
	lines []string
}

func (o *output) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.Join(o.lines, "\n")
}

func captureOutput(t *testing.T) *output {
	t.Helper()
	o := &output{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.lines = append(o.lines, fmt.Sprint(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return o
}

// stubAnswers feeds prompts from answers, in order, and uses password for
// every password prompt.
func stubAnswers(t *testing.T, password string, answers ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword

	var mu sync.Mutex
	queue := append([]string(nil), answers...)
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(queue) == 0 {
			return "", fmt.Errorf("unexpected prompt %q", prompt)
		}
		v := queue[0]
		queue = queue[1:]
		return v, nil
	}
	getPassword = func(io.Writer) ([]byte, error) { return []byte(password), nil }

	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type testEnv struct {
	app   *App
	ctl   *session.Controller
	store *memStore
	srv   *apitest.Server
}

// newTestEnv wires a real controller and HTTP client against the fake API.
// The session is initialized before returning.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	srv := apitest.NewServer()
	t.Cleanup(srv.Close)
	return newTestEnvWith(t, srv, &memStore{}, true)
}

func newTestEnvWith(t *testing.T, srv *apitest.Server, store *memStore, init bool) *testEnv {
	t.Helper()
	api, err := client.NewHTTPClient(srv.URL, store, 5*time.Second, nil)
	require.NoError(t, err)

	ctl := session.NewController(api, store, nil)
	if init {
		ctl.Init(context.Background())
	}

	app := NewApp(ctl, api, nil)
	app.reader = bufio.NewReader(strings.NewReader(""))
	app.out = io.Discard
	return &testEnv{app: app, ctl: ctl, store: store, srv: srv}
}

// signIn stores a valid credential for a fresh user and restores the session.
func (e *testEnv) signIn(t *testing.T, username string) {
	t.Helper()
	e.srv.AddUser(username, username+"@example.org", "secret")
	require.NoError(t, e.store.Set(context.Background(), e.srv.Token(username)))
	e.ctl.Init(context.Background())
	require.True(t, e.ctl.Current().Authenticated())
}
