package docker

import (
	"context"
	"strings"
	"time"

	"github.com/docker/docker/client"
)

// Config holds Docker endpoint configuration.
type Config struct {
	Host      string
	TLSVerify bool
	CertPath  string
}

func DefaultConfig() Config {
	return Config{
		Host: client.DefaultDockerHost,
	}
}

// Client wraps the Docker Engine API client. Construction is cheap and never
// talks to the daemon; reachability is checked per call so an unreachable
// daemon degrades to the file fallback instead of failing startup.
type Client struct {
	cli  *client.Client
	host string
}

// NewClient creates a Docker client for the configured endpoint.
func NewClient(cfg Config) (*Client, error) {
	host := cfg.Host
	if host == "" {
		host = client.DefaultDockerHost
	}

	opts := []client.Opt{
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	}

	if cfg.TLSVerify {
		opts = append(opts, client.WithTLSClientConfig(
			cfg.CertPath+"/ca.pem",
			cfg.CertPath+"/cert.pem",
			cfg.CertPath+"/key.pem",
		))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, err
	}

	return &Client{cli: cli, host: host}, nil
}

// Available probes daemon reachability with a bounded ping.
func (c *Client) Available(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	_, err := c.cli.Ping(ctx)
	return err
}

// Host returns the configured endpoint URL.
func (c *Client) Host() string {
	return c.host
}

// RemoteLabel returns a short display qualifier for non-local endpoints, or
// "" when the daemon is on the local socket.
func (c *Client) RemoteLabel() string {
	if strings.HasPrefix(c.host, "unix://") || strings.HasPrefix(c.host, "npipe://") {
		return ""
	}
	label := c.host
	if i := strings.Index(label, "://"); i >= 0 {
		label = label[i+3:]
	}
	if i := strings.LastIndex(label, ":"); i >= 0 {
		label = label[:i]
	}
	return label
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.cli != nil {
		return c.cli.Close()
	}
	return nil
}

const (
	probeTimeout = 5 * time.Second
	listTimeout  = 10 * time.Second
	tailTimeout  = 20 * time.Second
)
