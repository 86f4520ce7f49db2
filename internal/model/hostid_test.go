package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveHostId(t *testing.T) {
	cases := []struct {
		spec string
		want HostId
	}{
		{"local", "local"},
		{"", "local"},
		{"ssh://u@h:22", "u@h"},
		{"ssh://u@h", "u@h"},
		{"ssh://h", "h"},
		{"ssh://u@h:22/some/path", "u@h"},
		{"tcp://host:2375", "host:2375"},
		{"tls://host:2376", "host:2376"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, DeriveHostId(c.spec), "spec=%s", c.spec)
	}
}

func TestDeriveHostIdIdempotence(t *testing.T) {
	require.Equal(t, DeriveHostId("ssh://u@h:22"), DeriveHostId("ssh://u@h"))
}

func TestClassifyTransport(t *testing.T) {
	kind, rest := ClassifyTransport("ssh://user@box:22")
	require.Equal(t, TransportSSH, kind)
	require.Equal(t, "user@box:22", rest)

	kind, rest = ClassifyTransport("local")
	require.Equal(t, TransportLocal, kind)
	require.Equal(t, "local", rest)
}

func TestParseSSHTarget(t *testing.T) {
	user, host, port := ParseSSHTarget("user@box:2222")
	require.Equal(t, "user", user)
	require.Equal(t, "box", host)
	require.Equal(t, "2222", port)

	user, host, port = ParseSSHTarget("box")
	require.Equal(t, "", user)
	require.Equal(t, "box", host)
	require.Equal(t, "22", port)
}
