// internal/docker/containers.go
package docker

import (
	"context"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"

	"logdeck/internal/model"
)

// ListContainers returns the currently running containers.
func (c *Client) ListContainers(ctx context.Context) ([]model.Container, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	containers, err := c.cli.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		return nil, err
	}

	result := make([]model.Container, 0, len(containers))
	for _, cont := range containers {
		// The API reports names with a leading "/"
		name := ""
		if len(cont.Names) > 0 {
			name = strings.TrimPrefix(cont.Names[0], "/")
		}

		id := cont.ID
		if len(id) > 12 {
			id = id[:12]
		}

		result = append(result, model.Container{
			ID:      id,
			Name:    name,
			Image:   cont.Image,
			Status:  cont.Status,
			State:   cont.State,
			Created: time.Unix(cont.Created, 0),
		})
	}

	return result, nil
}
