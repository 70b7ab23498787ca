// Package apitest runs an in-process fake of the health planning API so the
// client can be exercised end to end without the real backend.
//
// Tokens are real HS256 JWTs; the fake validates them the way the backend
// does, so expired or forged credentials are rejected with 401.
package apitest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/healthplanner/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	PathLogin    = "/api/auth/login"
	PathMe       = "/api/auth/me"
	PathRegister = "/api/auth/register"
	PathProfile  = "/api/health/profile"
	PathWorkout  = "/api/health/plan"
	PathMealPlan = "/api/health/mealplan"
)

const tokenTTL = 30 * time.Minute

type account struct {
	id        string
	email     string
	password  string
	createdAt time.Time
}

type failure struct {
	status int
	detail string
}

// Request is what the fake saw of one call.
type Request struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
}

// Server is the fake API. Zero configuration is needed beyond AddUser; the
// plan endpoints answer with DefaultMealPlan and DefaultWorkoutPlan unless
// overridden.
type Server struct {
	*httptest.Server

	secret []byte

	mu          sync.Mutex
	users       map[string]account
	profiles    map[string]models.Profile
	failures    map[string]failure
	delays      map[string]chan struct{}
	requests    []Request
	mealPlan    models.MealPlan
	workoutPlan models.WorkoutPlan
}

func NewServer() *Server {
	s := &Server{
		secret:      []byte("apitest-secret"),
		users:       map[string]account{},
		profiles:    map[string]models.Profile{},
		failures:    map[string]failure{},
		delays:      map[string]chan struct{}{},
		mealPlan:    DefaultMealPlan(),
		workoutPlan: DefaultWorkoutPlan(),
	}
	s.Server = httptest.NewServer(s.Router())
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.With(s.authMiddleware).Get("/auth/me", s.handleMe)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/health/profile", s.handleGetProfile)
			r.Post("/health/profile", s.handleSaveProfile)
			r.Post("/health/plan", s.handleWorkoutPlan)
			r.Post("/health/mealplan", s.handleMealPlan)
		})
	})

	return r
}

// AddUser creates an account directly, bypassing /auth/register.
func (s *Server) AddUser(username, email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = account{id: uuid.NewString(), email: email, password: password, createdAt: time.Now().UTC()}
}

// SetProfile stores a profile for username.
func (s *Server) SetProfile(username string, p models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[username] = p
}

func (s *Server) Profile(username string) (models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[username]
	return p, ok
}

func (s *Server) SetMealPlan(p models.MealPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mealPlan = p
}

func (s *Server) SetWorkoutPlan(p models.WorkoutPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workoutPlan = p
}

// Fail makes every later call to path answer with status and detail. An
// empty detail sends a body without one.
func (s *Server) Fail(path string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = failure{status: status, detail: detail}
}

// ClearFailure undoes Fail for path.
func (s *Server) ClearFailure(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, path)
}

// Hold makes calls to path block until the returned function is called.
func (s *Server) Hold(path string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.delays[path] = ch
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.delays, path)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Requests returns the calls seen so far, oldest first.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Calls counts requests to path.
func (s *Server) Calls(path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}

// Token mints a valid credential for username.
func (s *Server) Token(username string) string {
	return s.mint(username, time.Now().Add(tokenTTL))
}

// ExpiredToken mints a credential that is correctly signed but expired.
func (s *Server) ExpiredToken(username string) string {
	return s.mint(username, time.Now().Add(-time.Minute))
}

func (s *Server) mint(username string, exp time.Time) string {
	signed, err := generateToken(username, s.secret, exp)
	if err != nil {
		panic(err)
	}
	return signed
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
		})
		hold := s.delays[r.URL.Path]
		f, failing := s.failures[r.URL.Path]
		s.mu.Unlock()

		if hold != nil {
			select {
			case <-hold:
			case <-r.Context().Done():
				return
			}
		}

		if failing {
			if f.detail == "" {
				writeJSON(w, f.status, map[string]string{})
				return
			}
			writeDetail(w, f.status, f.detail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		username, err := usernameFromToken(tokenString, s.secret)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		s.mu.Lock()
		_, known := s.users[username]
		s.mu.Unlock()
		if !known {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		next.ServeHTTP(w, r.WithContext(withUsername(r.Context(), username)))
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[req.Username]; exists {
		writeDetail(w, http.StatusBadRequest, "Username already registered")
		return
	}
	for _, a := range s.users {
		if a.email == req.Email {
			writeDetail(w, http.StatusBadRequest, "Email already registered")
			return
		}
	}

	a := account{id: uuid.NewString(), email: req.Email, password: req.Password, createdAt: time.Now().UTC()}
	s.users[req.Username] = a
	writeJSON(w, http.StatusCreated, userOf(req.Username, a))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	s.mu.Lock()
	a, ok := s.users[req.Username]
	s.mu.Unlock()
	if !ok || a.password != req.Password {
		writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}

	writeJSON(w, http.StatusOK, models.Token{AccessToken: s.Token(req.Username), TokenType: "bearer"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	username := usernameFrom(r)
	s.mu.Lock()
	a := s.users[username]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, userOf(username, a))
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := s.Profile(usernameFrom(r))
	if !ok {
		writeDetail(w, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var p models.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeValidation(w, "Input should be a valid number")
		return
	}
	if err := validateProfile(p); err != nil {
		writeValidation(w, err.Error())
		return
	}
	s.SetProfile(usernameFrom(r), p)
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.Profile(usernameFrom(r)); !ok {
		writeDetail(w, http.StatusBadRequest, "Create a profile first")
		return
	}
	s.mu.Lock()
	plan := s.workoutPlan
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, models.WorkoutPlanResponse{WorkoutPlan: plan})
}

func (s *Server) handleMealPlan(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.Profile(usernameFrom(r)); !ok {
		writeDetail(w, http.StatusBadRequest, "Create a profile first")
		return
	}
	s.mu.Lock()
	plan := s.mealPlan
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, plan)
}

func validateProfile(p models.Profile) error {
	switch {
	case p.Age <= 0:
		return errors.New("age must be positive")
	case !p.Gender.Valid():
		return errors.New("gender must be male, female or other")
	case p.Weight <= 0:
		return errors.New("weight must be positive")
	case p.Height <= 0:
		return errors.New("height must be positive")
	}
	return nil
}

// NaiveTimeLayout is how the backend writes timestamps: UTC, microseconds,
// no offset.
const NaiveTimeLayout = "2006-01-02T15:04:05.000000"

type userResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func userOf(username string, a account) userResponse {
	return userResponse{ID: a.id, Username: username, Email: a.email, CreatedAt: a.createdAt.Format(NaiveTimeLayout)}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeValidation mimics the list-shaped 422 body of the real backend.
func writeValidation(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"detail": []map[string]any{{"loc": []string{"body"}, "msg": msg, "type": "value_error"}},
	})
}
