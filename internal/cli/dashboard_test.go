package cli

import "testing"

func TestDozzleSuppressedDetectsSSHEnv(t *testing.T) {
	for _, k := range []string{"SSH_CLIENT", "SSH_TTY", "SSH_CONNECTION"} {
		t.Run(k, func(t *testing.T) {
			t.Setenv("SSH_CLIENT", "")
			t.Setenv("SSH_TTY", "")
			t.Setenv("SSH_CONNECTION", "")
			t.Setenv(k, "10.0.0.1 22 10.0.0.2 22")

			if !dozzleSuppressed() {
				t.Fatalf("expected dozzleSuppressed to be true with %s set", k)
			}
		})
	}
}

func TestDozzleSuppressedFalseWithoutSSHEnv(t *testing.T) {
	t.Setenv("SSH_CLIENT", "")
	t.Setenv("SSH_TTY", "")
	t.Setenv("SSH_CONNECTION", "")

	if dozzleSuppressed() {
		t.Fatal("expected dozzleSuppressed to be false with no SSH env vars set")
	}
}
