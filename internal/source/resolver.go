// internal/source/resolver.go
package source

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"logdeck/internal/docker"
	"logdeck/internal/model"
)

// Resolver decides which concrete source feeds a service: the preferred
// container when the daemon is reachable and a matching container exists,
// otherwise the configured fallback file.
type Resolver struct {
	rt docker.Runtime
}

func NewResolver(rt docker.Runtime) *Resolver {
	return &Resolver{rt: rt}
}

// Resolve picks the backing source for desc. It never fails: when docker is
// out of reach the fallback file is used. The returned notes are tagged
// informational lines the caller appends to the service buffer so the
// operator always sees why a fallback happened.
func (r *Resolver) Resolve(ctx context.Context, desc model.ServiceDescriptor) (Source, []string) {
	if err := r.rt.Available(ctx); err != nil {
		log.WithError(err).WithField("service", desc.Name).Debug("docker unreachable, using file fallback")
		return NewFileSource(desc.File), []string{
			fmt.Sprintf("[docker] Docker daemon unreachable: %v. Falling back to file.", err),
		}
	}

	// Exact identifier first: if its logs are obtainable it is
	// authoritative, running or not.
	if _, err := r.rt.TailLogs(ctx, desc.Container, 1); err == nil {
		return NewContainerSource(r.rt, desc.Container), nil
	}

	containers, err := r.rt.ListContainers(ctx)
	if err != nil {
		return NewFileSource(desc.File), []string{
			fmt.Sprintf("[docker] %v. Falling back to file.", classifyDocker(err, desc.Container)),
		}
	}

	if name := BestMatch(desc.Container, desc.Name, containers); name != "" {
		log.WithFields(log.Fields{"service": desc.Name, "container": name}).Debug("matched container")
		return NewContainerSource(r.rt, name), nil
	}

	return NewFileSource(desc.File), []string{
		fmt.Sprintf("[docker] No running container matched %q. Falling back to file.", desc.Container),
	}
}

// ListContainers exposes the running container list for chooser UIs.
func (r *Resolver) ListContainers(ctx context.Context) ([]model.Container, error) {
	if err := r.rt.Available(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	containers, err := r.rt.ListContainers(ctx)
	if err != nil {
		return nil, classifyDocker(err, "")
	}
	return containers, nil
}

// Runtime returns the underlying container runtime.
func (r *Resolver) Runtime() docker.Runtime {
	return r.rt
}

// BestMatch applies the container matching heuristic: exact name or ID
// equality first, then case-insensitive substring containment over a fixed
// candidate order (preferred identifier, preferred with separators
// normalized, friendly name with separators normalized), then the first
// listed container. Container names are often auto-generated with project
// prefixes; exact-match-first keeps behavior predictable while the
// substring fallback keeps it usable without manual configuration. Ties
// break on first match in iteration order, so the result is deterministic
// for a fixed container list.
func BestMatch(preferred, friendly string, containers []model.Container) string {
	if len(containers) == 0 {
		return ""
	}

	for _, c := range containers {
		if c.Name == preferred || c.ID == preferred {
			return c.Name
		}
	}

	candidates := []string{
		preferred,
		strings.ReplaceAll(preferred, "-", "_"),
		friendly,
		strings.ReplaceAll(friendly, " ", "-"),
		strings.ReplaceAll(friendly, " ", "_"),
	}

	for _, cand := range candidates {
		if cand == "" {
			continue
		}
		lc := strings.ToLower(cand)
		for _, c := range containers {
			if strings.Contains(strings.ToLower(c.Name), lc) {
				return c.Name
			}
		}
	}

	return containers[0].Name
}
