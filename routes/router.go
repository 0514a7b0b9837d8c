package routes

import (
	"sync"

	"github.com/jrsteele09/go-admin-portal/routeguard"
	"github.com/jrsteele09/go-admin-portal/session"
	"github.com/pkg/errors"
)

// Router glues the session store to the route table. It authorizes every
// navigation attempt and re-evaluates the current route whenever the session
// changes, so a route gated behind the startup probe settles into its final
// decision the moment the probe resolves.
type Router struct {
	store *session.Store
	table Table

	mu          sync.Mutex
	currentPath string
	onDecision  func(path string, decision routeguard.Decision)
	unsubscribe func()
}

// RouterOption modifies a Router during construction.
type RouterOption func(*Router)

// OnDecision registers the rendering-layer callback invoked with every
// decision the router produces, including re-evaluations after session
// changes.
func OnDecision(fn func(path string, decision routeguard.Decision)) RouterOption {
	return func(r *Router) {
		r.onDecision = fn
	}
}

// NewRouter creates a Router over the given store and table and subscribes
// to session changes. Call Close to detach.
func NewRouter(store *session.Store, table Table, options ...RouterOption) (*Router, error) {
	if store == nil {
		return nil, errors.New("[routes.NewRouter] store is required")
	}
	if table == nil {
		table = DefaultTable()
	}

	router := &Router{
		store:       store,
		table:       table,
		currentPath: RouteHome,
	}

	for _, opt := range options {
		opt(router)
	}

	router.unsubscribe = store.Subscribe(func(snap session.Snapshot) {
		router.reevaluate(snap)
	})

	return router, nil
}

// Navigate records path as the current route and returns the authorization
// decision for it.
func (r *Router) Navigate(path string) routeguard.Decision {
	path = normalize(path)

	r.mu.Lock()
	r.currentPath = path
	r.mu.Unlock()

	decision := routeguard.Authorize(r.store.Snapshot(), r.table.Resolve(path))
	r.notify(path, decision)
	return decision
}

// CurrentPath returns the route the router last navigated to.
func (r *Router) CurrentPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentPath
}

// Close detaches the router from the session store.
func (r *Router) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
}

func (r *Router) reevaluate(snap session.Snapshot) {
	r.mu.Lock()
	path := r.currentPath
	r.mu.Unlock()

	decision := routeguard.Authorize(snap, r.table.Resolve(path))
	r.notify(path, decision)
}

func (r *Router) notify(path string, decision routeguard.Decision) {
	if r.onDecision != nil {
		r.onDecision(path, decision)
	}
}
