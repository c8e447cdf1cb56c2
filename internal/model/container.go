// internal/model/container.go
package model

import "time"

// Container is a running container as reported by the runtime, trimmed to
// the fields the choosers and resolver care about.
type Container struct {
	ID      string
	Name    string
	Image   string
	Status  string
	State   string
	Created time.Time
}
