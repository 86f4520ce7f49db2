package hostmanager

import (
	"bufio"
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"dtop/internal/dockerclient"
	"dtop/internal/model"
)

// logTail is how many historical lines are requested before following live,
//
const logTail = "100"

// RunLogWorker streams logs for key: last logTail lines, then follows live.
// Each line's RFC3339 timestamp prefix and body are parsed, the body's ANSI
// escapes are decoded to styled text once at arrival, and a LogLine event
// is emitted in receive order. Exits on ctx cancellation or stream end.
func RunLogWorker(ctx context.Context, client dockerclient.Client, key model.ContainerKey, out chan<- model.AppEvent) {
	body, err := client.Logs(ctx, key.ContainerId, logTail, true)
	if err != nil {
		return
	}
	defer body.Close()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		entry := parseLogLine(scanner.Text())
		trySend(ctx, out, model.AppEvent{Kind: model.EventLogLine, Key: key, LogEntry: entry})
	}
}

// parseLogLine splits a Docker log line into its RFC3339 timestamp prefix
// (if present) and body, decoding the body's ANSI sequences to styled text.
func parseLogLine(line string) model.LogEntry {
	ts := time.Now().UTC()
	body := line

	if prefix, rest, ok := splitTimestampPrefix(line); ok {
		ts = prefix
		body = rest
	}

	return model.LogEntry{
		Timestamp: ts,
		Styled:    decodeANSI(body),
	}
}

// sgrSequence matches an SGR (Select Graphic Rendition) escape sequence,
// the subset of ANSI codes that carries color/style rather than cursor or
// screen control.
var sgrSequence = regexp.MustCompile("\x1b\\[[0-9;]*m")

// decodeANSI keeps a log line's SGR color/style codes intact and strips
// everything else Docker forwarded from the container's raw output —
// cursor moves, screen clears, OSC titles — that would otherwise corrupt a
// scrolling log pane. Doing this once at arrival means the viewport never
// re-parses a line's escapes on every frame.
func decodeANSI(body string) string {
	if !strings.ContainsRune(body, '\x1b') {
		return body
	}

	var b strings.Builder
	last := 0
	for _, loc := range sgrSequence.FindAllStringIndex(body, -1) {
		b.WriteString(ansi.Strip(body[last:loc[0]]))
		b.WriteString(body[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(ansi.Strip(body[last:]))
	return b.String()
}

// splitTimestampPrefix attempts to parse an RFC3339(Nano) timestamp
// followed by a space at the start of line, as emitted when the log stream
// is requested with timestamps=true.
func splitTimestampPrefix(line string) (time.Time, string, bool) {
	spaceIdx := -1
	for i, r := range line {
		if r == ' ' {
			spaceIdx = i
			break
		}
	}
	if spaceIdx <= 0 {
		return time.Time{}, line, false
	}
	ts, err := time.Parse(time.RFC3339Nano, line[:spaceIdx])
	if err != nil {
		return time.Time{}, line, false
	}
	return ts, line[spaceIdx+1:], true
}
