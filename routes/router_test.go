package routes_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jrsteele09/go-admin-portal/routeguard"
	"github.com/jrsteele09/go-admin-portal/routes"
	"github.com/jrsteele09/go-admin-portal/session"
	"github.com/jrsteele09/go-admin-portal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedBackend resolves every operation from pre-set fields; operations
// the test leaves unset return their zero behavior.
type scriptedBackend struct {
	meUser  *users.User
	meErr   error
	logout  error
	loginFn func(email, password string) (*users.User, error)
}

func (b *scriptedBackend) Me(context.Context) (*users.User, error) {
	return b.meUser, b.meErr
}

func (b *scriptedBackend) Login(_ context.Context, email, password string) (*users.User, error) {
	return b.loginFn(email, password)
}

func (b *scriptedBackend) Register(context.Context, users.RegisterRequest) (*users.User, error) {
	return nil, nil
}

func (b *scriptedBackend) Logout(context.Context) error {
	return b.logout
}

func (b *scriptedBackend) UpdateProfile(context.Context, users.ProfileUpdate) (*users.User, error) {
	return nil, nil
}

func (b *scriptedBackend) UpdatePassword(context.Context, string, string, string) error {
	return nil
}

func (b *scriptedBackend) DeleteMe(context.Context) error {
	return nil
}

// decisionRecorder captures router decisions in order.
type decisionRecorder struct {
	mu        sync.Mutex
	decisions []routeguard.Decision
	paths     []string
}

func (r *decisionRecorder) record(path string, decision routeguard.Decision) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	r.decisions = append(r.decisions, decision)
}

func (r *decisionRecorder) last() (string, routeguard.Decision) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.decisions) == 0 {
		return "", routeguard.Decision{}
	}
	return r.paths[len(r.paths)-1], r.decisions[len(r.decisions)-1]
}

func TestRouterRequiresStore(t *testing.T) {
	_, err := routes.NewRouter(nil, nil)
	require.Error(t, err)
}

func TestRouterNavigate(t *testing.T) {
	backend := &scriptedBackend{meUser: &users.User{ID: "u1", Role: users.RoleAdmin}}
	store, err := session.New(backend)
	require.NoError(t, err)
	store.CheckSession(context.Background())

	router, err := routes.NewRouter(store, nil)
	require.NoError(t, err)
	defer router.Close()

	assert.True(t, router.Navigate(routes.RouteAdminUsers).Allowed())
	assert.Equal(t, routes.RouteAdminUsers, router.CurrentPath())

	assert.True(t, router.Navigate(routes.RoutePricing).Allowed())

	// Admin does not satisfy the exact user requirement on dashboard routes.
	decision := router.Navigate(routes.RouteDashboardBilling)
	assert.Equal(t, routeguard.ActionRedirect, decision.Action)
	assert.Equal(t, routeguard.DefaultPath, decision.Target)
}

func TestRouterSettlesAfterProbeResolves(t *testing.T) {
	backend := &scriptedBackend{meUser: &users.User{ID: "u1", Role: users.RoleUser}}
	store, err := session.New(backend)
	require.NoError(t, err)

	recorder := &decisionRecorder{}
	router, err := routes.NewRouter(store, nil, routes.OnDecision(recorder.record))
	require.NoError(t, err)
	defer router.Close()

	// Navigation before the probe resolves shows the loading state rather
	// than bouncing the user to /login.
	decision := router.Navigate(routes.RouteDashboard)
	assert.Equal(t, routeguard.ActionLoading, decision.Action)

	store.CheckSession(context.Background())

	path, final := recorder.last()
	assert.Equal(t, routes.RouteDashboard, path)
	assert.True(t, final.Allowed())
}

func TestRouterRedirectsWhenSessionEnds(t *testing.T) {
	backend := &scriptedBackend{meUser: &users.User{ID: "u1", Role: users.RoleUser}}
	store, err := session.New(backend)
	require.NoError(t, err)
	store.CheckSession(context.Background())

	recorder := &decisionRecorder{}
	router, err := routes.NewRouter(store, nil, routes.OnDecision(recorder.record))
	require.NoError(t, err)
	defer router.Close()

	require.True(t, router.Navigate(routes.RouteDashboardProfile).Allowed())

	store.Logout(context.Background())

	path, final := recorder.last()
	assert.Equal(t, routes.RouteDashboardProfile, path)
	assert.Equal(t, routeguard.ActionRedirect, final.Action)
	assert.Equal(t, routeguard.LoginPath, final.Target)
}
