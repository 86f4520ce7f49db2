package model

import (
	"strings"
)

// DeriveHostId canonicalizes a host specifier into a stable HostId.
//
//	"local"                          -> "local"
//	"ssh://[user@]host[:port][/path]" -> "user@host" (port and path stripped)
//	"tcp://host:port" / "tls://host:port" -> "host:port"
func DeriveHostId(spec string) HostId {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "local" {
		return HostId("local")
	}

	switch {
	case strings.HasPrefix(spec, "ssh://"):
		rest := strings.TrimPrefix(spec, "ssh://")
		rest = strings.SplitN(rest, "/", 2)[0]
		user, hostport := splitUserHost(rest)
		host := stripPort(hostport)
		if user != "" {
			return HostId(user + "@" + host)
		}
		return HostId(host)

	case strings.HasPrefix(spec, "tcp://"), strings.HasPrefix(spec, "tls://"):
		rest := strings.TrimPrefix(strings.TrimPrefix(spec, "tcp://"), "tls://")
		rest = strings.SplitN(rest, "/", 2)[0]
		return HostId(rest)

	default:
		return HostId(spec)
	}
}

// splitUserHost splits "user@host:port" into user and "host:port".
func splitUserHost(s string) (user, hostport string) {
	if i := strings.LastIndex(s, "@"); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}

// stripPort removes a trailing ":port" from a host:port pair, tolerating
// bracketed IPv6 literals.
func stripPort(hostport string) string {
	if strings.HasPrefix(hostport, "[") {
		if i := strings.Index(hostport, "]"); i >= 0 {
			return hostport[:i+1]
		}
		return hostport
	}
	if i := strings.LastIndex(hostport, ":"); i >= 0 {
		return hostport[:i]
	}
	return hostport
}

// TransportKind classifies a host spec into the transport used to reach it.
type TransportKind int

const (
	TransportLocal TransportKind = iota
	TransportTCP
	TransportTLS
	TransportSSH
)

// ClassifyTransport reports which transport a host spec requires and
// returns the spec with its scheme stripped (the raw address/DSN).
func ClassifyTransport(spec string) (TransportKind, string) {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "" || spec == "local":
		return TransportLocal, "local"
	case strings.HasPrefix(spec, "ssh://"):
		return TransportSSH, strings.TrimPrefix(spec, "ssh://")
	case strings.HasPrefix(spec, "tcp://"):
		return TransportTCP, strings.TrimPrefix(spec, "tcp://")
	case strings.HasPrefix(spec, "tls://"):
		return TransportTLS, strings.TrimPrefix(spec, "tls://")
	default:
		return TransportLocal, spec
	}
}

// ParseSSHTarget splits an ssh host spec (without the ssh:// scheme) into
// user, host, and port (port defaults to "22" if absent).
func ParseSSHTarget(rest string) (user, host, port string) {
	rest = strings.SplitN(rest, "/", 2)[0]
	user, hostport := splitUserHost(rest)
	host = stripPort(hostport)
	port = "22"
	if idx := strings.LastIndex(hostport, ":"); idx >= 0 && !strings.HasPrefix(hostport, "[") {
		port = hostport[idx+1:]
	}
	return user, host, port
}
