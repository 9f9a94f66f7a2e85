package internal

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/docker/cli/cli/streams"
)

// clearFrame homes the cursor and clears the screen so each frame replaces
// the previous one, watch(1) style.
const clearFrame = "\x1b[H\x1b[2J"

// SessionExecer is the slice of the container runtime the watcher needs:
// executing an observation command inside the session and capturing its
// output.
type SessionExecer interface {
	Exec(ctx context.Context, cmd []string) (string, error)
}

// Watcher observes a running session at a fixed cadence. Each tick probes
// the marker directory for an ingest count, then tails the fixed list of
// log files, and renders the combined output as one terminal frame.
//
// Probe failures are folded into that tick's frame and never end the loop;
// the only way out is context cancellation.
type Watcher struct {
	session SessionExecer
	config  Config
	out     *streams.Out
	styles  Styles
}

// NewWatcher creates a Watcher over the given session, rendering frames to out.
func NewWatcher(session SessionExecer, config Config, out *streams.Out, styles Styles) Watcher {
	return Watcher{
		session: session,
		config:  config,
		out:     out,
		styles:  styles,
	}
}

// Watch renders a frame immediately and then once per tick interval until
// the context is cancelled, returning the context's error. Ticks run their
// probes strictly in sequence; a slow probe delays the next frame rather
// than overlapping it.
func (w Watcher) Watch(ctx context.Context) error {
	w.render(w.Tick(ctx))

	ticker := time.NewTicker(w.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.render(w.Tick(ctx))
		}
	}
}

// Tick builds a single observation frame: header line, ingest count when
// the marker directory exists, then the log tails.
func (w Watcher) Tick(ctx context.Context) string {
	var frame strings.Builder

	header := w.styles.Header.Render(fmt.Sprintf("Every %s: %s", w.config.TickInterval, w.config.ContainerName))
	stamp := w.styles.Timestamp.Render(time.Now().Format(time.DateTime))
	frame.WriteString(header + "  " + stamp + "\n\n")

	if count, ok := w.probeMarker(ctx); ok {
		frame.WriteString(w.styles.Count.Render("Ingested image tiles: "+count) + "\n\n")
	}

	frame.WriteString(w.tailLogs(ctx))

	return frame.String()
}

// probeMarker reports the entry count of the marker directory. A missing
// directory or a failed probe yields no count line for this tick.
func (w Watcher) probeMarker(ctx context.Context) (string, bool) {
	script := fmt.Sprintf("if [ -d %s ]; then ls %s | wc -l; fi", w.config.MarkerDir, w.config.MarkerDir)
	output, err := w.session.Exec(ctx, []string{"/bin/sh", "-c", script})
	if err != nil {
		return "", false
	}

	count := strings.TrimSpace(output)
	if count == "" {
		return "", false
	}

	return count, true
}

// tailLogs tails every configured log path in its fixed order with a single
// command, passing tail's output through verbatim. Missing files show up as
// tail's own diagnostics inside the frame; a failed probe contributes
// whatever partial output was captured.
func (w Watcher) tailLogs(ctx context.Context) string {
	cmd := append([]string{"tail", "-n", strconv.Itoa(w.config.TailLines)}, w.config.LogPaths...)
	output, _ := w.session.Exec(ctx, cmd)
	return w.styleLogHeaders(output)
}

// styleLogHeaders applies the log header style to the "==> path <==" file
// separators tail emits when given more than one file.
func (w Watcher) styleLogHeaders(output string) string {
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "==>") && strings.HasSuffix(trimmed, "<==") {
			lines[i] = w.styles.LogHeader.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (w Watcher) render(frame string) {
	if height, _ := w.out.GetTtySize(); height > 0 {
		frame = clipFrame(frame, int(height))
	}
	fmt.Fprint(w.out, clearFrame+frame)
}

// clipFrame truncates a frame to the terminal height so a long tail does
// not scroll the header away.
func clipFrame(frame string, height int) string {
	lines := strings.Split(frame, "\n")
	if len(lines) <= height {
		return frame
	}
	return strings.Join(lines[:height], "\n") + "\n"
}
