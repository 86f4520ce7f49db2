package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []string{ErrConfig, ErrTransport, ErrProtocol, ErrAction, ErrTerminal}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code)
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{"config error", ErrConfig, "Invalid configuration in config.yaml", "Check your configuration file syntax"},
		{"transport error", ErrTransport, "Cannot connect to host", "Check the host is reachable and the daemon is running"},
		{"protocol error", ErrProtocol, "Unexpected response from Docker API", "Check the daemon's API version"},
		{"action error", ErrAction, "Failed to stop container", "Check the container is still running"},
		{"terminal error", ErrTerminal, "Terminal does not support required capabilities", "Try a different terminal emulator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorInterface(t *testing.T) {
	err := New(ErrConfig, "test message", "test suggestion")

	var _ error = err
	assert.NotEmpty(t, err.Error())
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
		notExpected   []string
	}{
		{
			name: "basic error formatting",
			err:  New(ErrConfig, "Invalid configuration", "Check config.yaml syntax"),
			expectedParts: []string{
				"Invalid configuration",
				"Check config.yaml syntax",
			},
		},
		{
			name: "error with failure symbol",
			err:  New(ErrTransport, "Connection failed", "Try again"),
			expectedParts: []string{
				"✗",
				"Connection failed",
			},
		},
		{
			name: "error without suggestion",
			err:  New(ErrAction, "Action failed", ""),
			expectedParts: []string{
				"Action failed",
			},
			notExpected: []string{
				"suggestion",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()

			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part)
			}
			for _, part := range tt.notExpected {
				assert.NotContains(t, output, part)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying network error")
	wrapped := Wrap(cause, "Connection to host failed")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrTransport, wrapped.Code, "Wrap should default to ErrTransport code")
	assert.Equal(t, "Connection to host failed", wrapped.Message)
	assert.Equal(t, cause, wrapped.Cause)
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("file not found")
	wrapped := WrapWithCode(cause, ErrConfig, "Failed to load config", "Create config.yaml")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrConfig, wrapped.Code)
	assert.Equal(t, "Failed to load config", wrapped.Message)
	assert.Equal(t, "Create config.yaml", wrapped.Suggestion)
	assert.Equal(t, cause, wrapped.Cause)
}

func TestErrorWrappingPreservesCause(t *testing.T) {
	original := errors.New("original error")
	wrapped := WrapWithCode(original, ErrProtocol, "Unexpected payload", "")

	assert.Equal(t, original, wrapped.Cause)
	assert.Contains(t, wrapped.Error(), "original error")
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	wrapped := WrapWithCode(cause, ErrAction, "Action failed", "")

	assert.Equal(t, cause, wrapped.Unwrap())
}

func TestErrorsIs(t *testing.T) {
	cause := errors.New("specific error")
	wrapped := WrapWithCode(cause, ErrTerminal, "Terminal error", "")

	assert.True(t, errors.Is(wrapped, cause))
}

func TestErrorsAs(t *testing.T) {
	wrapped := New(ErrConfig, "Config error", "Fix config")

	var target *Error
	ok := errors.As(wrapped, &target)

	assert.True(t, ok)
	assert.Equal(t, ErrConfig, target.Code)
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrTransport))
	assert.False(t, IsCode(errors.New("standard error"), ErrConfig))
	assert.False(t, IsCode(nil, ErrConfig))
}

func TestErrorMessageStructure(t *testing.T) {
	err := WrapWithCode(
		errors.New("dial tcp: connection timed out after 2s"),
		ErrTransport,
		"Cannot connect to host tcp://build-box:2375",
		"Check the host is reachable and DOCKER_HOST is correct",
	)

	output := err.Error()
	lines := strings.Split(output, "\n")

	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[0]), "✗"))
	assert.Contains(t, lines[0], "Cannot connect to host tcp://build-box:2375")
}
