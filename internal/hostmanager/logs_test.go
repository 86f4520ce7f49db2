package hostmanager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLogLineWithTimestamp(t *testing.T) {
	line := "2024-01-02T15:04:05.123456789Z hello world"
	entry := parseLogLine(line)
	require.Equal(t, "hello world", entry.Styled)
	require.Equal(t, 2024, entry.Timestamp.Year())
}

func TestParseLogLineWithoutTimestamp(t *testing.T) {
	before := time.Now().UTC()
	entry := parseLogLine("plain line with no prefix")
	require.Equal(t, "plain line with no prefix", entry.Styled)
	require.True(t, !entry.Timestamp.Before(before))
}

func TestParseLogLinePreservesANSI(t *testing.T) {
	line := "2024-01-02T15:04:05Z \x1b[31mred\x1b[0m text"
	entry := parseLogLine(line)
	require.Contains(t, entry.Styled, "\x1b[31m")
}

func TestDecodeANSIStripsCursorAndScreenCodes(t *testing.T) {
	body := "\x1b[2Kprogress: \x1b[32m50%\x1b[0m\x1b[1A"
	out := decodeANSI(body)
	require.Contains(t, out, "\x1b[32m")
	require.Contains(t, out, "\x1b[0m")
	require.NotContains(t, out, "\x1b[2K")
	require.NotContains(t, out, "\x1b[1A")
	require.Contains(t, out, "progress: ")
	require.Contains(t, out, "50%")
}

func TestDecodeANSIPassesThroughPlainText(t *testing.T) {
	require.Equal(t, "no escapes here", decodeANSI("no escapes here"))
}
