package cli

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/healthplanner/internal/client/apitest"
	"github.com/dmitrijs2005/healthplanner/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storedProfile = models.Profile{
	Age:                40,
	Gender:             models.GenderMale,
	Weight:             82.5,
	Height:             181,
	DietaryPreferences: []string{"vegetarian", "low-carb"},
	ExistingConditions: []string{"knee pain"},
}

func TestProtectedPage_AnonymousGoesToLogin(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)
	env.srv.AddUser("alice", "alice@example.org", "secret")
	env.srv.SetProfile("alice", storedProfile)
	stubAnswers(t, "secret", "alice")

	err := env.app.Profile(context.Background())
	require.ErrorIs(t, err, errRedirected)

	text := out.String()
	assert.Contains(t, text, "Please log in to open profile.")
	assert.Contains(t, text, "Type profile to continue.")
	assert.NotContains(t, text, "My Health Profile")
	assert.Zero(t, env.srv.Calls(apitest.PathProfile))
	assert.True(t, env.app.isLoggedIn())
}

func TestProfile_Authenticated(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)
	env.signIn(t, "alice")
	env.srv.SetProfile("alice", storedProfile)

	require.NoError(t, env.app.Profile(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Loading profile…")
	assert.Contains(t, text, "My Health Profile")
	assert.Contains(t, text, "82.5")
	assert.Contains(t, text, "vegetarian, low-carb")
	assert.Equal(t, 1, env.srv.Calls(apitest.PathProfile))
}

func TestProfile_MissingShowsDetail(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)
	env.signIn(t, "alice")

	require.NoError(t, env.app.Profile(context.Background()))
	assert.Contains(t, out.String(), "Profile not found")
}

func TestProfile_WaitsForRestore(t *testing.T) {
	captureOutput(t)
	srv := apitest.NewServer()
	t.Cleanup(srv.Close)
	srv.AddUser("alice", "alice@example.org", "secret")
	srv.SetProfile("alice", storedProfile)

	store := &memStore{}
	require.NoError(t, store.Set(context.Background(), srv.Token("alice")))
	env := newTestEnvWith(t, srv, store, false)

	release := srv.Hold(apitest.PathMe)
	defer release()
	go env.ctl.Init(context.Background())
	require.Eventually(t, func() bool { return srv.Calls(apitest.PathMe) == 1 }, time.Second, time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- env.app.Profile(context.Background()) }()

	select {
	case err := <-done:
		t.Fatalf("profile returned while restoring: %v", err)
	case <-time.After(30 * time.Millisecond):
	}
	assert.Zero(t, srv.Calls(apitest.PathProfile))

	release()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("profile did not render after restore")
	}
	assert.Equal(t, 1, srv.Calls(apitest.PathProfile))
}

func TestPlan_BothViews(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)
	env.signIn(t, "alice")
	env.srv.SetProfile("alice", storedProfile)

	require.NoError(t, env.app.Plan(context.Background()))

	text := out.String()
	assert.Contains(t, text, "7-Day Meal Plan (~2100 kcal/day)")
	assert.Contains(t, text, "Personalized Workout Plan")
	assert.Contains(t, text, "Squats — 3x12 (rest 60s)")
	assert.Equal(t, 1, env.srv.Calls(apitest.PathMealPlan))
	assert.Equal(t, 1, env.srv.Calls(apitest.PathWorkout))
}

func TestPlan_IndependentFailures(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)
	env.signIn(t, "alice")
	env.srv.SetProfile("alice", storedProfile)
	env.srv.Fail(apitest.PathMealPlan, http.StatusInternalServerError, "")

	require.NoError(t, env.app.Plan(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Failed to load meal plan")
	assert.Contains(t, text, "Personalized Workout Plan")
}

func TestEditProfile_PrefillsAndKeepsValues(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)
	env.signIn(t, "alice")
	env.srv.SetProfile("alice", storedProfile)

	// keep everything except the weight
	stubAnswers(t, "", "", "", "80", "", "", "")

	require.NoError(t, env.app.EditProfile(context.Background()))

	want := storedProfile
	want.Weight = 80
	got, ok := env.srv.Profile("alice")
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Contains(t, out.String(), "Profile saved!")
	// saving does not refetch
	assert.Equal(t, 1, countMethod(env, http.MethodGet, apitest.PathProfile))
}

func TestEditProfile_ParseErrorSendsNothing(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)
	env.signIn(t, "alice")

	stubAnswers(t, "", "forty", "", "80", "180", "", "")

	require.Error(t, env.app.EditProfile(context.Background()))

	assert.Contains(t, out.String(), "age must be a whole number of at least 1")
	assert.Zero(t, countMethod(env, http.MethodPost, apitest.PathProfile))
}

func TestEditProfile_ServerRejects(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)
	env.signIn(t, "alice")
	env.srv.Fail(apitest.PathProfile, http.StatusUnprocessableEntity, "weight out of range")

	stubAnswers(t, "", "30", "other", "80", "180", "", "")

	require.Error(t, env.app.EditProfile(context.Background()))
	assert.Contains(t, out.String(), "weight out of range")
}

func TestEditProfile_FailedSaveKeepsDraftForRetry(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)
	env.signIn(t, "alice")
	env.srv.Fail(apitest.PathProfile, http.StatusUnprocessableEntity, "weight out of range")

	stubAnswers(t, "",
		"30", "other", "80", "180", "vegan", "asthma",
		"", "", "", "", "", "",
	)

	require.Error(t, env.app.EditProfile(context.Background()))
	assert.Contains(t, out.String(), "weight out of range")
	assert.Equal(t, 1, countMethod(env, http.MethodGet, apitest.PathProfile))

	env.srv.ClearFailure(apitest.PathProfile)
	require.NoError(t, env.app.EditProfile(context.Background()))

	want := models.Profile{
		Age:                30,
		Gender:             models.GenderOther,
		Weight:             80,
		Height:             180,
		DietaryPreferences: []string{"vegan"},
		ExistingConditions: []string{"asthma"},
	}
	got, ok := env.srv.Profile("alice")
	require.True(t, ok)
	assert.Equal(t, want, got)

	text := out.String()
	assert.Contains(t, text, "Resuming your unsaved changes.")
	assert.Contains(t, text, "Profile saved!")
	assert.Equal(t, 2, countMethod(env, http.MethodPost, apitest.PathProfile))
	// the retry did not prefill from the server
	assert.Equal(t, 1, countMethod(env, http.MethodGet, apitest.PathProfile))
	assert.Nil(t, env.app.draft)
}

func TestEditProfile_ParseErrorKeepsDraft(t *testing.T) {
	captureOutput(t)
	env := newTestEnv(t)
	env.signIn(t, "alice")

	stubAnswers(t, "",
		"forty", "female", "61", "170", "", "",
		"41", "", "", "", "", "",
	)

	require.Error(t, env.app.EditProfile(context.Background()))
	assert.Zero(t, countMethod(env, http.MethodPost, apitest.PathProfile))

	require.NoError(t, env.app.EditProfile(context.Background()))
	got, ok := env.srv.Profile("alice")
	require.True(t, ok)
	assert.Equal(t, 41, got.Age)
	assert.Equal(t, models.GenderFemale, got.Gender)
	assert.Equal(t, 61.0, got.Weight)
}

func TestEditProfile_LogoutDropsDraft(t *testing.T) {
	captureOutput(t)
	env := newTestEnv(t)
	env.signIn(t, "alice")
	env.srv.Fail(apitest.PathProfile, http.StatusUnprocessableEntity, "weight out of range")

	stubAnswers(t, "", "30", "other", "80", "180", "", "")

	require.Error(t, env.app.EditProfile(context.Background()))
	require.NotNil(t, env.app.draft)

	_ = env.app.Logout(context.Background())
	assert.Nil(t, env.app.draft)
}

func TestEditProfile_DashClearsList(t *testing.T) {
	captureOutput(t)
	env := newTestEnv(t)
	env.signIn(t, "alice")
	env.srv.SetProfile("alice", storedProfile)

	stubAnswers(t, "", "", "", "", "", "", "-")

	require.NoError(t, env.app.EditProfile(context.Background()))

	got, ok := env.srv.Profile("alice")
	require.True(t, ok)
	assert.Equal(t, storedProfile.DietaryPreferences, got.DietaryPreferences)
	assert.Empty(t, got.ExistingConditions)
}

func TestWhoAmI(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)
	env.signIn(t, "alice")

	require.NoError(t, env.app.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "alice <alice@example.org>")
}

func TestHome(t *testing.T) {
	out := captureOutput(t)
	env := newTestEnv(t)

	require.NoError(t, env.app.Home(context.Background()))
	assert.Contains(t, out.String(), "Welcome to HealthPlanner")
}

func countMethod(env *testEnv, method, path string) int {
	n := 0
	for _, r := range env.srv.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}
