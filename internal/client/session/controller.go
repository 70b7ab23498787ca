package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/healthplanner/internal/client/client"
	"github.com/dmitrijs2005/healthplanner/internal/client/credentials"
	"github.com/dmitrijs2005/healthplanner/internal/logging"
)

const (
	loginFallback    = "Login failed"
	registerFallback = "Registration failed"
)

var (
	// ErrLoginAfterRegister wraps a login failure that followed a successful
	// account creation. The account exists; retrying Login is safe.
	ErrLoginAfterRegister = errors.New("account created but login failed")

	// ErrSuperseded is returned when another mutation (usually Logout)
	// happened while the call was waiting on the network. Its result was
	// dropped.
	ErrSuperseded = errors.New("session changed during request")
)

// Controller drives the session state machine. Mutations are serialized;
// each one bumps an epoch and network results that come back under an older
// epoch are discarded.
//
// A new Controller reports Restoring until Init resolves, so guards hold
// instead of redirecting a user whose stored credential is still valid.
type Controller struct {
	client client.Client
	store  credentials.Store
	logger logging.Logger

	mu      sync.Mutex
	epoch   uint64
	subs    map[int]func(Session)
	nextSub int

	current atomic.Pointer[Session]
}

func NewController(c client.Client, store credentials.Store, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.NewNop()
	}
	ctl := &Controller{
		client: c,
		store:  store,
		logger: logger,
		subs:   map[int]func(Session){},
	}
	s := Restoring()
	ctl.current.Store(&s)
	return ctl
}

// Current returns the latest session snapshot.
func (c *Controller) Current() Session {
	return *c.current.Load()
}

// Subscribe registers fn to receive every session change in order. fn runs
// synchronously with the mutation and must not call back into the
// controller. The returned func unsubscribes.
func (c *Controller) Subscribe(fn func(Session)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Init restores the session from the stored credential. Any failure leaves
// the store empty and the session Anonymous; nothing is reported to the user.
func (c *Controller) Init(ctx context.Context) {
	c.mu.Lock()
	epoch := c.bump()

	_, ok, err := c.store.Get(ctx)
	if err != nil {
		c.logger.Warn(ctx, "read stored credential", "error", err)
		c.set(Anonymous())
		c.mu.Unlock()
		return
	}
	if !ok {
		c.set(Anonymous())
		c.mu.Unlock()
		return
	}
	c.set(Restoring())
	c.mu.Unlock()

	user, err := c.client.Me(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		c.logger.Debug(ctx, "restore result dropped")
		return
	}
	if err != nil {
		c.logger.Info(ctx, "stored credential rejected, signing out", "error", err)
		if clearErr := c.store.Clear(ctx); clearErr != nil {
			c.logger.Warn(ctx, "clear stored credential", "error", clearErr)
		}
		c.set(Anonymous())
		return
	}
	c.logger.Info(ctx, "session restored", "user", user.Username)
	c.set(Authenticated(user))
}

// Login authenticates and, on success, persists the credential before
// fetching the user's identity.
//
// On failure subscribers see Error(detail) and then the previous session;
// the error is returned with the server detail available via
// client.DetailOf.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	c.mu.Lock()
	epoch := c.bump()
	prev := c.Current()
	c.mu.Unlock()

	tok, err := c.client.Login(ctx, username, password)

	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		return ErrSuperseded
	}
	if err != nil {
		c.fail(client.DetailOf(err, loginFallback), prev)
		c.mu.Unlock()
		return err
	}
	if err := c.store.Set(ctx, tok.AccessToken); err != nil {
		c.fail(loginFallback, prev)
		c.mu.Unlock()
		return fmt.Errorf("store credential: %w", err)
	}
	c.mu.Unlock()

	user, err := c.client.Me(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return ErrSuperseded
	}
	if err != nil {
		if clearErr := c.store.Clear(ctx); clearErr != nil {
			c.logger.Warn(ctx, "clear stored credential", "error", clearErr)
		}
		// the previous credential was overwritten, so there is nothing to go back to
		c.fail(client.DetailOf(err, loginFallback), Anonymous())
		return fmt.Errorf("fetch identity: %w", err)
	}

	c.logger.Info(ctx, "logged in", "user", user.Username)
	c.set(Authenticated(user))
	return nil
}

// Register creates the account and then logs in with the same credentials.
// If creation fails no login is attempted. A login failure after creation is
// wrapped in ErrLoginAfterRegister.
func (c *Controller) Register(ctx context.Context, username, email, password string) error {
	c.mu.Lock()
	epoch := c.bump()
	prev := c.Current()
	c.mu.Unlock()

	err := c.client.Register(ctx, username, email, password)

	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		return ErrSuperseded
	}
	if err != nil {
		c.fail(client.DetailOf(err, registerFallback), prev)
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	c.logger.Info(ctx, "account created", "user", username)

	if err := c.Login(ctx, username, password); err != nil {
		if errors.Is(err, ErrSuperseded) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrLoginAfterRegister, err)
	}
	return nil
}

// Logout clears the credential and the session without touching the
// network. A store error is returned but the session is Anonymous either way.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bump()
	err := c.store.Clear(ctx)
	c.set(Anonymous())

	if err != nil {
		c.logger.Warn(ctx, "clear stored credential", "error", err)
		return fmt.Errorf("clear credential: %w", err)
	}
	c.logger.Info(ctx, "logged out")
	return nil
}

// bump starts a new epoch. Callers hold mu.
func (c *Controller) bump() uint64 {
	c.epoch++
	return c.epoch
}

// fail broadcasts an error state and then settles on next. Callers hold mu.
func (c *Controller) fail(detail string, next Session) {
	c.set(Failed(detail))
	if next.Status == StatusRestoring {
		next = Anonymous()
	}
	c.set(next)
}

// set publishes s. Callers hold mu.
func (c *Controller) set(s Session) {
	c.current.Store(&s)
	for _, fn := range c.subs {
		fn(s)
	}
}
