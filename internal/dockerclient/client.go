// Package dockerclient adapts the official Docker Engine SDK
// (github.com/docker/docker/client) behind a narrow capability interface —
// {list, inspect, events, stats, logs, start, stop, restart, remove, pause,
// unpause} — so the rest of dtop depends only on that capability set and
// not on how a given host's transport (local socket, tcp, tls, ssh) was
// constructed.
package dockerclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/events"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"

	"dtop/internal/model"
)

// Client is the capability set the core depends on. A concrete instance is
// constructed per HostId by New, which picks the transport based on the
// host spec's scheme.
type Client interface {
	Ping(ctx context.Context) error
	ListContainers(ctx context.Context, f filters.Args) ([]container.Summary, error)
	InspectContainer(ctx context.Context, id string) (container.InspectResponse, error)
	Events(ctx context.Context, f filters.Args) (<-chan events.Message, <-chan error)
	Stats(ctx context.Context, id string) (io.ReadCloser, error)
	Logs(ctx context.Context, id string, tail string, follow bool) (io.ReadCloser, error)
	Start(ctx context.Context, id string) error
	Stop(ctx context.Context, id string, timeout *time.Duration) error
	Restart(ctx context.Context, id string, timeout *time.Duration) error
	Remove(ctx context.Context, id string, force bool) error
	Pause(ctx context.Context, id string) error
	Unpause(ctx context.Context, id string) error
	Close() error
}

// dockerSDKClient wraps *client.Client to satisfy Client.
type dockerSDKClient struct {
	cli *client.Client
}

func (d *dockerSDKClient) Ping(ctx context.Context) error {
	_, err := d.cli.Ping(ctx)
	return err
}

func (d *dockerSDKClient) ListContainers(ctx context.Context, f filters.Args) ([]container.Summary, error) {
	return d.cli.ContainerList(ctx, container.ListOptions{All: true, Filters: f})
}

func (d *dockerSDKClient) InspectContainer(ctx context.Context, id string) (container.InspectResponse, error) {
	return d.cli.ContainerInspect(ctx, id)
}

func (d *dockerSDKClient) Events(ctx context.Context, f filters.Args) (<-chan events.Message, <-chan error) {
	return d.cli.Events(ctx, events.ListOptions{Filters: f})
}

func (d *dockerSDKClient) Stats(ctx context.Context, id string) (io.ReadCloser, error) {
	resp, err := d.cli.ContainerStats(ctx, id, true)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (d *dockerSDKClient) Logs(ctx context.Context, id string, tail string, follow bool) (io.ReadCloser, error) {
	return d.cli.ContainerLogs(ctx, id, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Timestamps: true,
		Follow:     follow,
		Tail:       tail,
	})
}

func (d *dockerSDKClient) Start(ctx context.Context, id string) error {
	return d.cli.ContainerStart(ctx, id, container.StartOptions{})
}

func (d *dockerSDKClient) Stop(ctx context.Context, id string, timeout *time.Duration) error {
	var opts container.StopOptions
	if timeout != nil {
		secs := int(timeout.Seconds())
		opts.Timeout = &secs
	}
	return d.cli.ContainerStop(ctx, id, opts)
}

func (d *dockerSDKClient) Restart(ctx context.Context, id string, timeout *time.Duration) error {
	var opts container.StopOptions
	if timeout != nil {
		secs := int(timeout.Seconds())
		opts.Timeout = &secs
	}
	return d.cli.ContainerRestart(ctx, id, opts)
}

func (d *dockerSDKClient) Remove(ctx context.Context, id string, force bool) error {
	return d.cli.ContainerRemove(ctx, id, container.RemoveOptions{Force: force})
}

func (d *dockerSDKClient) Pause(ctx context.Context, id string) error {
	return d.cli.ContainerPause(ctx, id)
}

func (d *dockerSDKClient) Unpause(ctx context.Context, id string) error {
	return d.cli.ContainerUnpause(ctx, id)
}

func (d *dockerSDKClient) Close() error {
	return d.cli.Close()
}

// New constructs a Client for the given host spec, dispatching to the
// local/tcp/tls/ssh transport per model.ClassifyTransport.
func New(ctx context.Context, spec string) (Client, model.HostId, error) {
	hostId := model.DeriveHostId(spec)
	kind, rest := model.ClassifyTransport(spec)

	switch kind {
	case model.TransportLocal:
		cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
		if err != nil {
			return nil, hostId, err
		}
		return &dockerSDKClient{cli: cli}, hostId, nil

	case model.TransportTCP:
		cli, err := client.NewClientWithOpts(
			client.WithHost("tcp://"+rest),
			client.WithAPIVersionNegotiation(),
		)
		if err != nil {
			return nil, hostId, err
		}
		return &dockerSDKClient{cli: cli}, hostId, nil

	case model.TransportTLS:
		httpClient, err := tlsHTTPClient()
		if err != nil {
			return nil, hostId, err
		}
		cli, err := client.NewClientWithOpts(
			client.WithHost("tcp://"+rest),
			client.WithHTTPClient(httpClient),
			client.WithAPIVersionNegotiation(),
		)
		if err != nil {
			return nil, hostId, err
		}
		return &dockerSDKClient{cli: cli}, hostId, nil

	case model.TransportSSH:
		cli, err := newSSHClient(ctx, rest)
		if err != nil {
			return nil, hostId, err
		}
		return &dockerSDKClient{cli: cli}, hostId, nil

	default:
		return nil, hostId, fmt.Errorf("dockerclient: unsupported host spec %q", spec)
	}
}

// tlsHTTPClient builds an http.Client whose certs are discovered from
// DOCKER_CERT_PATH, matching the docker CLI's own tls:// convention.
func tlsHTTPClient() (*http.Client, error) {
	certPath := os.Getenv("DOCKER_CERT_PATH")
	if certPath == "" {
		return &http.Client{}, nil
	}

	cert, err := tls.LoadX509KeyPair(
		filepath.Join(certPath, "cert.pem"),
		filepath.Join(certPath, "key.pem"),
	)
	if err != nil {
		return nil, fmt.Errorf("dockerclient: loading tls client cert: %w", err)
	}

	caCert, err := os.ReadFile(filepath.Join(certPath, "ca.pem"))
	if err != nil {
		return nil, fmt.Errorf("dockerclient: loading tls ca cert: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caCert)

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
		MinVersion:   tls.VersionTLS12,
	}

	return &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: tlsConfig,
			DialContext: (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
		},
	}, nil
}
