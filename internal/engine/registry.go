// internal/engine/registry.go
package engine

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"logdeck/internal/docker"
	"logdeck/internal/model"
	"logdeck/internal/source"
)

// Registry owns one State per configured service, in configuration order.
// It is constructed once at startup and handed to whichever front end runs;
// there is no ambient global state.
type Registry struct {
	resolver *source.Resolver

	mu       sync.Mutex
	order    []string
	services map[string]*State
	active   string
}

// Options tunes registry construction.
type Options struct {
	Capacity int // per-service buffer capacity, DefaultCapacity when zero
	Tail     int // initial tail size, DefaultTail when zero
	Prefs    PrefsStore
}

// NewRegistry builds the service states. Persisted preferences, when a
// store is provided, are restored here and saved back on every
// pref-changing command.
func NewRegistry(rt docker.Runtime, descs []model.ServiceDescriptor, opts Options) *Registry {
	r := &Registry{
		resolver: source.NewResolver(rt),
		services: make(map[string]*State, len(descs)),
	}

	for _, desc := range descs {
		st := NewState(desc, r.resolver, opts.Capacity)
		if opts.Tail > 0 {
			st.SetTail(opts.Tail)
		}
		if opts.Prefs != nil {
			if p, ok, err := opts.Prefs.LoadPrefs(desc.Name); err != nil {
				log.WithError(err).WithField("service", desc.Name).Warn("loading preferences failed")
			} else if ok {
				st.applyPrefs(p)
			}
			store := opts.Prefs
			st.onPrefs = func(p Prefs) {
				if err := store.SavePrefs(p); err != nil {
					log.WithError(err).WithField("service", p.Service).Warn("saving preferences failed")
				}
			}
		}
		r.order = append(r.order, desc.Name)
		r.services[desc.Name] = st
	}

	if len(r.order) > 0 {
		r.active = r.order[0]
	}
	return r
}

// Names returns the service names in configuration order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Get returns the state for a named service.
func (r *Registry) Get(name string) (*State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.services[name]
	return st, ok
}

// Active returns the currently displayed service.
func (r *Registry) Active() *State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.services[r.active]
}

// SetActive switches the displayed service: the previous service's follow
// session is stopped (and its stop awaited) before the new service loads,
// so only the active service's session is guaranteed running.
func (r *Registry) SetActive(ctx context.Context, name string) (*State, error) {
	r.mu.Lock()
	next, ok := r.services[name]
	if !ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("unknown service %q", name)
	}
	prev := r.services[r.active]
	same := r.active == name
	r.active = name
	r.mu.Unlock()

	if same {
		return next, nil
	}
	if prev != nil {
		prev.StopFollow()
	}
	next.Load(ctx)
	return next, nil
}

// ListContainers lists running containers for chooser UIs.
func (r *Registry) ListContainers(ctx context.Context) ([]model.Container, error) {
	return r.resolver.ListContainers(ctx)
}

// Shutdown stops every follow session. Called once at process exit.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	states := make([]*State, 0, len(r.services))
	for _, st := range r.services {
		states = append(states, st)
	}
	r.mu.Unlock()

	for _, st := range states {
		st.StopFollow()
	}
}
