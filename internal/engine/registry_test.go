// internal/engine/registry_test.go
package engine

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"logdeck/internal/model"
)

// memPrefs is an in-memory PrefsStore.
type memPrefs struct {
	saved map[string]Prefs
}

func newMemPrefs() *memPrefs { return &memPrefs{saved: make(map[string]Prefs)} }

func (m *memPrefs) LoadPrefs(service string) (Prefs, bool, error) {
	p, ok := m.saved[service]
	return p, ok, nil
}

func (m *memPrefs) SavePrefs(p Prefs) error {
	m.saved[p.Service] = p
	return nil
}

func testDescriptors() []model.ServiceDescriptor {
	return []model.ServiceDescriptor{
		{Name: "api", Container: "api-1", File: "/var/log/api.log"},
		{Name: "worker", Container: "worker-1", File: "/var/log/worker.log"},
	}
}

func TestRegistryOrderAndActive(t *testing.T) {
	rt := &fakeRuntime{available: errors.New("down")}
	r := NewRegistry(rt, testDescriptors(), Options{})
	defer r.Shutdown()

	if got, want := r.Names(), []string{"api", "worker"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if got := r.Active().Name(); got != "api" {
		t.Errorf("Active().Name() = %q, want %q", got, "api")
	}
	if _, ok := r.Get("worker"); !ok {
		t.Error("Get(worker) not found")
	}
	if _, ok := r.Get("nope"); ok {
		t.Error("Get(nope) unexpectedly found")
	}
}

func TestRegistrySetActive(t *testing.T) {
	rt := &fakeRuntime{
		logs: map[string][]string{"worker-1": {"worker says hi"}},
	}
	r := NewRegistry(rt, testDescriptors(), Options{})
	defer r.Shutdown()

	st, err := r.SetActive(context.Background(), "worker")
	if err != nil {
		t.Fatalf("SetActive(worker) error: %v", err)
	}
	if st.Name() != "worker" {
		t.Errorf("SetActive returned %q, want worker", st.Name())
	}
	if !bufferContains(st.Buffer(), "worker says hi") {
		t.Error("switching did not load the new service")
	}

	if _, err := r.SetActive(context.Background(), "nope"); err == nil {
		t.Error("SetActive(nope) did not error")
	}
}

func TestRegistryRestoresAndSavesPrefs(t *testing.T) {
	store := newMemPrefs()
	store.saved["api"] = Prefs{Service: "api", Tail: 42, Level: "ERROR", TextFilter: "boom"}

	rt := &fakeRuntime{available: errors.New("down")}
	r := NewRegistry(rt, testDescriptors(), Options{Tail: 200, Prefs: store})
	defer r.Shutdown()

	st, _ := r.Get("api")
	if got := st.Tail(); got != 42 {
		t.Errorf("restored tail = %d, want 42", got)
	}
	if got := st.Filter(); got.Level != LevelError || got.Text != "boom" {
		t.Errorf("restored filter = %+v, want ERROR/boom", got)
	}

	// The configured default applies where nothing was stored.
	worker, _ := r.Get("worker")
	if got := worker.Tail(); got != 200 {
		t.Errorf("default tail = %d, want 200", got)
	}

	// Changes flow back to the store.
	worker.SetLevel("WARN")
	saved, ok := store.saved["worker"]
	if !ok || saved.Level != "WARN" || saved.Tail != 200 {
		t.Errorf("saved prefs = %+v, ok=%v; want WARN/200", saved, ok)
	}
}
