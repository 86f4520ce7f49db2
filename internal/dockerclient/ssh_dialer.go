package dockerclient

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/docker/docker/client"
	"golang.org/x/crypto/ssh"

	"dtop/pkg/sshutil"
)

// newSSHClient dials host over SSH and runs `docker system dial-stdio`
// inside the session, the same technique the real docker CLI uses for
// ssh:// endpoints, wiring the session's stdin/stdout pipes into a
// synthetic net.Conn that becomes the Docker SDK's transport.
func newSSHClient(ctx context.Context, hostSpec string) (*client.Client, error) {
	sshc, err := sshutil.Dial(hostSpec, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("dockerclient: ssh dial: %w", err)
	}

	dialer := &sshStdioDialer{sshc: sshc}
	httpClient := &http.Client{
		Transport: &http.Transport{
			DialContext: dialer.DialContext,
		},
	}

	cli, err := client.NewClientWithOpts(
		client.WithHost("http://docker.sock"),
		client.WithHTTPClient(httpClient),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		sshc.Close()
		return nil, err
	}
	return cli, nil
}

// sshStdioDialer opens one `docker system dial-stdio` session per Docker
// SDK connection attempt. Each session is an independent duplex stream; the
// SDK's connection pooling decides how many are opened concurrently.
type sshStdioDialer struct {
	sshc *sshutil.Client
}

func (d *sshStdioDialer) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	session, err := d.sshc.Client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("dockerclient: opening ssh session: %w", err)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		session.Close()
		return nil, err
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		return nil, err
	}

	if err := session.Start("docker system dial-stdio"); err != nil {
		session.Close()
		return nil, fmt.Errorf("dockerclient: starting dial-stdio: %w", err)
	}

	return &sshDuplexConn{session: session, stdin: stdin, stdout: stdout}, nil
}

// sshDuplexConn adapts an *ssh.Session's stdin/stdout pipes to net.Conn so
// the Docker SDK's HTTP transport can speak the Engine API over them.
type sshDuplexConn struct {
	session *ssh.Session
	stdin   interface {
		Write([]byte) (int, error)
		Close() error
	}
	stdout interface {
		Read([]byte) (int, error)
	}
}

func (c *sshDuplexConn) Read(b []byte) (int, error)  { return c.stdout.Read(b) }
func (c *sshDuplexConn) Write(b []byte) (int, error) { return c.stdin.Write(b) }

func (c *sshDuplexConn) Close() error {
	c.stdin.Close()
	return c.session.Close()
}

func (c *sshDuplexConn) LocalAddr() net.Addr                { return dialStdioAddr{} }
func (c *sshDuplexConn) RemoteAddr() net.Addr                { return dialStdioAddr{} }
func (c *sshDuplexConn) SetDeadline(t time.Time) error       { return nil }
func (c *sshDuplexConn) SetReadDeadline(t time.Time) error   { return nil }
func (c *sshDuplexConn) SetWriteDeadline(t time.Time) error  { return nil }

// dialStdioAddr is a placeholder net.Addr; the SSH tunnel has no meaningful
// local/remote socket address of its own.
type dialStdioAddr struct{}

func (dialStdioAddr) Network() string { return "ssh-dial-stdio" }
func (dialStdioAddr) String() string  { return "docker system dial-stdio" }
