// internal/model/service.go
package model

// SourceKind identifies which kind of backing source feeds a service.
type SourceKind string

const (
	SourceDocker  SourceKind = "docker"
	SourceFile    SourceKind = "file"
	SourceUnknown SourceKind = "unknown"
)

// ServiceDescriptor is the static configuration of one logical service.
// Built once at startup from the config file and never mutated.
type ServiceDescriptor struct {
	Name      string // friendly name shown in the UI
	Container string // preferred container name or id
	File      string // fallback log file path
}

// SourceRef points at the concrete source currently feeding a service.
// The ID may carry an opaque "host:" prefix when the Docker endpoint is
// remote; that prefix is display-only.
type SourceRef struct {
	Kind SourceKind
	ID   string
}

func (r SourceRef) String() string {
	if r.Kind == "" {
		return "unknown"
	}
	return string(r.Kind) + ":" + r.ID
}
