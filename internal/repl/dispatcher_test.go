package repl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tessro/riffle/internal/audio"
	"github.com/tessro/riffle/internal/core"
	rerrors "github.com/tessro/riffle/internal/errors"
	"github.com/tessro/riffle/internal/playback"
	"github.com/tessro/riffle/internal/source"
)

// fakeResolver accepts any local path listed in files and any remote link.
type fakeResolver struct {
	files    map[string]bool
	remote   error
	resolved []core.Reference
}

func (f *fakeResolver) Resolve(ctx context.Context, ref core.Reference) (*source.Resolved, error) {
	f.resolved = append(f.resolved, ref)
	if ref.IsRemote() {
		if f.remote != nil {
			return nil, f.remote
		}
		return &source.Resolved{Path: "/scratch/Remote Song.flac", Reference: ref, Size: 4200000}, nil
	}
	if !f.files[ref.Raw] {
		return nil, fmt.Errorf("%w: %s", rerrors.ErrNotFound, ref.Raw)
	}
	return &source.Resolved{Path: ref.Raw, Reference: ref}, nil
}

// fakeDecoder rejects paths ending in .bad.
type fakeDecoder struct{}

func (fakeDecoder) Open(res *source.Resolved) (*audio.Stream, error) {
	if strings.HasSuffix(res.Path, ".bad") {
		return nil, fmt.Errorf("%w: %s", rerrors.ErrUnsupported, res.Path)
	}
	title := strings.TrimSuffix(res.Path[strings.LastIndex(res.Path, "/")+1:], ".flac")
	return &audio.Stream{Track: core.Track{
		Title:     title,
		Path:      res.Path,
		Reference: res.Reference,
		Duration:  3*time.Minute + 5*time.Second,
		Size:      res.Size,
	}}, nil
}

type harness struct {
	d        *Dispatcher
	queue    *playback.Queue
	resolver *fakeResolver
	out      *bytes.Buffer
	err      *bytes.Buffer
}

func newHarness(files ...string) *harness {
	h := &harness{
		queue:    playback.NewQueue(),
		resolver: &fakeResolver{files: map[string]bool{}},
		out:      &bytes.Buffer{},
		err:      &bytes.Buffer{},
	}
	for _, f := range files {
		h.resolver.files[f] = true
	}
	h.d = New(Options{
		Resolver: h.resolver,
		Decoder:  fakeDecoder{},
		Queue:    h.queue,
		Out:      h.out,
		Err:      h.err,
		Prompt:   "> ",
	})
	return h
}

func (h *harness) run(t *testing.T, lines ...string) {
	t.Helper()
	for _, l := range lines {
		h.d.Execute(context.Background(), l)
	}
}

func (h *harness) lastLine() string {
	lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
	return lines[len(lines)-1]
}

func TestPlayMissingFile(t *testing.T) {
	h := newHarness()
	h.run(t, "play /no/such/file.flac")

	if !strings.Contains(h.err.String(), "file not found") {
		t.Errorf("stderr = %q, want file not found", h.err.String())
	}
	if h.queue.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.queue.Len())
	}
	if got := h.lastLine(); got != "No audio in queue" {
		t.Errorf("status = %q, want %q", got, "No audio in queue")
	}
	if h.d.state != stateRunning {
		t.Error("failed play should not end the session")
	}
}

func TestPlayStartsThenQueues(t *testing.T) {
	h := newHarness("a.flac", "b.flac")

	h.run(t, "play a.flac")
	if !strings.Contains(h.out.String(), "Playing Audio...") {
		t.Errorf("stdout = %q, want Playing Audio...", h.out.String())
	}
	if got := h.lastLine(); got != "Position in queue: 1" {
		t.Errorf("status = %q, want %q", got, "Position in queue: 1")
	}

	h.out.Reset()
	h.run(t, "play b.flac")
	if !strings.Contains(h.out.String(), "Adding audio to queue...") {
		t.Errorf("stdout = %q, want Adding audio to queue...", h.out.String())
	}
	if got := h.lastLine(); got != "Position in queue: 2" {
		t.Errorf("status = %q, want %q", got, "Position in queue: 2")
	}
	snap := h.queue.Snapshot()
	if got := snap.Current().Title; got != "a" {
		t.Errorf("Current() = %q, want %q", got, "a")
	}
}

func TestPlayMultipleReferences(t *testing.T) {
	h := newHarness("a.flac", "b.flac")
	h.run(t, "play a.flac missing.flac b.flac")

	if h.queue.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.queue.Len())
	}
	if strings.Count(h.err.String(), "\n") != 1 {
		t.Errorf("stderr = %q, want one diagnostic", h.err.String())
	}
}

func TestPlayWithoutArgument(t *testing.T) {
	h := newHarness()
	h.run(t, "play")

	if len(h.resolver.resolved) != 1 || h.resolver.resolved[0].Raw != "" {
		t.Errorf("resolved = %v, want one empty reference", h.resolver.resolved)
	}
	if !strings.Contains(h.err.String(), "file not found") {
		t.Errorf("stderr = %q, want file not found", h.err.String())
	}
}

func TestPlayRemote(t *testing.T) {
	h := newHarness()
	h.run(t, "play https://www.youtube.com/watch?v=dQw4w9WgXcQ")

	if len(h.resolver.resolved) != 1 || !h.resolver.resolved[0].IsRemote() {
		t.Fatalf("resolved = %v, want one remote reference", h.resolver.resolved)
	}
	out := h.out.String()
	if !strings.Contains(out, "Remote link found") {
		t.Errorf("stdout = %q, want remote notice", out)
	}
	if !strings.Contains(out, "Downloaded Remote Song (3:05, 4.2 MB, remote)") {
		t.Errorf("stdout = %q, want download summary", out)
	}
	if h.queue.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.queue.Len())
	}
}

func TestPlayRemoteFailureContinues(t *testing.T) {
	h := newHarness("a.flac")
	h.resolver.remote = fmt.Errorf("%w: exit status 1", rerrors.ErrFetchFailed)

	more := true
	for _, l := range []string{"play youtu.be/dQw4w9WgXcQ", "play a.flac"} {
		more = h.d.Execute(context.Background(), l)
	}

	if !more {
		t.Error("Execute() = false after a failed fetch")
	}
	if !strings.Contains(h.err.String(), "download failed") {
		t.Errorf("stderr = %q, want download failed", h.err.String())
	}
	if h.queue.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.queue.Len())
	}
}

func TestPlayUndecodable(t *testing.T) {
	h := newHarness("x.bad")
	h.run(t, "play x.bad")

	if !strings.Contains(h.err.String(), "unsupported audio format") {
		t.Errorf("stderr = %q, want unsupported", h.err.String())
	}
	if h.queue.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.queue.Len())
	}
}

func TestSkipCounts(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		queued      int
		wantLen     int
		wantSkipMsg string
		wantNoMore  bool
	}{
		{"default", "skip", 3, 2, "Skipping 1 Song(s)...", false},
		{"short alias", "s 2", 3, 1, "Skipping 2 Song(s)...", false},
		{"invalid count", "skip abc", 3, 2, "Skipping 1 Song(s)...", false},
		{"negative count", "skip -2", 3, 2, "Skipping 1 Song(s)...", false},
		{"zero", "skip 0", 2, 2, "Skipping 0 Song(s)...", false},
		{"overshoot", "skip 5", 2, 0, "Skipping 5 Song(s)...", true},
		{"empty queue", "skip", 0, 0, "Skipping 1 Song(s)...", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := []string{"a.flac", "b.flac", "c.flac"}
			h := newHarness(files...)
			for i := 0; i < tt.queued; i++ {
				h.run(t, "play "+files[i])
			}
			h.out.Reset()

			h.run(t, tt.line)

			out := h.out.String()
			if !strings.Contains(out, tt.wantSkipMsg) {
				t.Errorf("stdout = %q, want %q", out, tt.wantSkipMsg)
			}
			if got := strings.Contains(out, "No more audio to play"); got != tt.wantNoMore {
				t.Errorf("no-more notice = %v, want %v (stdout %q)", got, tt.wantNoMore, out)
			}
			if h.queue.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", h.queue.Len(), tt.wantLen)
			}
		})
	}
}

func TestPlayTwoSkipFive(t *testing.T) {
	h := newHarness("a.flac", "b.flac")
	h.run(t, "play a.flac", "play b.flac", "skip 5")

	if h.queue.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.queue.Len())
	}
	if got := h.lastLine(); got != "No audio in queue" {
		t.Errorf("status = %q, want %q", got, "No audio in queue")
	}
}

func TestNext(t *testing.T) {
	h := newHarness("a.flac", "b.flac")
	h.run(t, "next")
	if !strings.Contains(h.out.String(), "No more audio to play") {
		t.Errorf("stdout = %q, want empty-queue notice", h.out.String())
	}

	h.run(t, "play a.flac", "play b.flac")
	h.out.Reset()
	h.run(t, "n")
	if !strings.Contains(h.out.String(), "Playing Next Song...") {
		t.Errorf("stdout = %q, want Playing Next Song...", h.out.String())
	}
	snap := h.queue.Snapshot()
	if got := snap.Current().Title; got != "b" {
		t.Errorf("Current() = %q, want %q", got, "b")
	}
}

func TestTransportCommands(t *testing.T) {
	h := newHarness("a.flac")
	h.run(t, "play a.flac")

	h.run(t, "pause")
	if !h.queue.Paused() {
		t.Error("pause did not pause")
	}
	h.run(t, "resume")
	if h.queue.Paused() {
		t.Error("resume did not resume")
	}
	h.run(t, "p")
	if !h.queue.Paused() {
		t.Error("p did not toggle to paused")
	}
	h.run(t, "p")
	if h.queue.Paused() {
		t.Error("p did not toggle back to playing")
	}

	h.out.Reset()
	h.run(t, "pause")
	if got := strings.TrimSpace(h.out.String()); got != "Position in queue: 1" {
		t.Errorf("stdout = %q, want only the status line", got)
	}
}

func TestClearAliases(t *testing.T) {
	for _, cmd := range []string{"clear", "c", "stop"} {
		t.Run(cmd, func(t *testing.T) {
			h := newHarness("a.flac", "b.flac")
			h.run(t, "play a.flac", "play b.flac", "pause")
			h.out.Reset()
			h.run(t, cmd)

			if h.queue.Len() != 0 {
				t.Errorf("Len() = %d, want 0", h.queue.Len())
			}
			want := "Audio Stopped\nNo audio in queue\n"
			if h.out.String() != want {
				t.Errorf("stdout = %q, want %q", h.out.String(), want)
			}
		})
	}
}

func TestEmptyLineIsSilent(t *testing.T) {
	h := newHarness()
	h.run(t, "", "   ", "\t")
	if h.out.Len() != 0 || h.err.Len() != 0 {
		t.Errorf("empty lines produced output: %q %q", h.out.String(), h.err.String())
	}
}

func TestUnknownCommandStillReportsStatus(t *testing.T) {
	h := newHarness()
	h.run(t, "dance")

	if !strings.Contains(h.err.String(), "unknown command: dance") {
		t.Errorf("stderr = %q, want unknown command", h.err.String())
	}
	if got := h.lastLine(); got != "No audio in queue" {
		t.Errorf("status = %q, want %q", got, "No audio in queue")
	}
}

func TestCommandsAreCaseSensitive(t *testing.T) {
	h := newHarness("a.flac")
	h.run(t, "PLAY a.flac")
	if h.queue.Len() != 0 {
		t.Error("PLAY should not be recognised")
	}
	if !strings.Contains(h.err.String(), "unknown command") {
		t.Errorf("stderr = %q, want unknown command", h.err.String())
	}
}

func TestList(t *testing.T) {
	h := newHarness("a.flac", "b.flac")
	h.run(t, "ls")
	if !strings.Contains(h.out.String(), "Queue is empty") {
		t.Errorf("stdout = %q, want Queue is empty", h.out.String())
	}

	h.run(t, "play a.flac", "play b.flac")
	h.out.Reset()
	h.run(t, "list")
	out := h.out.String()
	if !strings.Contains(out, "▶ 1. a (3:05)") {
		t.Errorf("stdout = %q, want current entry marked", out)
	}
	if !strings.Contains(out, "  2. b (3:05)") {
		t.Errorf("stdout = %q, want second entry", out)
	}
}

func TestHelp(t *testing.T) {
	h := newHarness()
	h.run(t, "help")
	if !strings.Contains(h.out.String(), "skip count songs") {
		t.Errorf("stdout = %q, want command table", h.out.String())
	}
	if h.err.Len() != 0 {
		t.Errorf("stderr = %q, want empty", h.err.String())
	}
}

func TestExitStopsPlayback(t *testing.T) {
	h := newHarness("a.flac", "b.flac")
	h.run(t, "play a.flac", "play b.flac", "pause")
	h.out.Reset()

	if more := h.d.Execute(context.Background(), "exit"); more {
		t.Error("Execute(exit) = true, want false")
	}
	if h.d.state != stateExiting {
		t.Error("dispatcher still running after exit")
	}
	if h.queue.State() != core.StateStopped {
		t.Errorf("State() = %v, want stopped", h.queue.State())
	}
	want := "Position in queue: 2\nExiting...\n"
	if h.out.String() != want {
		t.Errorf("stdout = %q, want %q", h.out.String(), want)
	}

	// Nothing runs after exit.
	if h.d.Execute(context.Background(), "play a.flac") {
		t.Error("Execute() after exit = true")
	}
	if h.queue.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.queue.Len())
	}
}

func TestRun(t *testing.T) {
	h := newHarness("a.flac")
	in := strings.NewReader("play a.flac\n\nexit\nplay a.flac\n")

	if err := h.d.Run(context.Background(), in); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if h.d.state != stateExiting {
		t.Error("dispatcher still running after Run")
	}
	if strings.Count(h.out.String(), "Playing Audio...") != 1 {
		t.Errorf("stdout = %q, want lines after exit ignored", h.out.String())
	}
	if strings.Contains(h.out.String(), "> ") {
		t.Error("prompt printed for non-interactive input")
	}
}

func TestRunEOFExits(t *testing.T) {
	h := newHarness()
	h.d.interactive = true

	if err := h.d.Run(context.Background(), strings.NewReader("pause\n")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	out := h.out.String()
	if !strings.HasPrefix(out, "> ") {
		t.Errorf("stdout = %q, want prompt", out)
	}
	if !strings.HasSuffix(out, "Exiting...\n") {
		t.Errorf("stdout = %q, want exit on EOF", out)
	}
	if h.queue.State() != core.StateStopped {
		t.Errorf("State() = %v, want stopped", h.queue.State())
	}
}

func TestParseCount(t *testing.T) {
	tests := map[string]int{
		"3":   3,
		"0":   0,
		"+2":  2,
		"-1":  -1,
		"abc": -1,
		"":    -1,
		"1.5": -1,
	}
	for in, want := range tests {
		if got := parseCount(in); got != want {
			t.Errorf("parseCount(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{65 * time.Second, "1:05"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
		{-time.Second, "0:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestPlayCollectsErrors(t *testing.T) {
	h := newHarness("a.flac", "my song.flac")

	res := h.d.Play(context.Background(), "a.flac", "missing.flac", "my song.flac")

	if res.Data != 2 {
		t.Errorf("Data = %d, want 2", res.Data)
	}
	if len(res.Errors) != 1 || !errors.Is(res.Errors[0], rerrors.ErrNotFound) {
		t.Errorf("Errors = %v, want one not-found error", res.Errors)
	}
	if got := h.lastLine(); got != "Position in queue: 2" {
		t.Errorf("status = %q, want %q", got, "Position in queue: 2")
	}
}

func TestRunLongLine(t *testing.T) {
	h := newHarness("a.flac", "b.flac")
	long := "play " + strings.Repeat("x", 70*1024)
	in := strings.NewReader("play a.flac\n" + long + "\nplay b.flac\nskip\n")

	if err := h.d.Run(context.Background(), in); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Count(h.err.String(), "\n") != 1 || !strings.Contains(h.err.String(), "file not found") {
		t.Errorf("stderr = %q, want one not-found diagnostic", h.err.String())
	}
	out := h.out.String()
	if !strings.Contains(out, "Skipping 1 Song(s)...") {
		t.Errorf("stdout = %q, want commands after the long line to run", out)
	}
	if strings.Count(out, "Exiting...") != 1 || !strings.HasSuffix(out, "Exiting...\n") {
		t.Errorf("stdout = %q, want a single exit at end of input", out)
	}
}

func TestRunLastLineWithoutNewline(t *testing.T) {
	h := newHarness("a.flac")

	if err := h.d.Run(context.Background(), strings.NewReader("play a.flac")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	out := h.out.String()
	if !strings.Contains(out, "Playing Audio...") {
		t.Errorf("stdout = %q, want unterminated line executed", out)
	}
	if !strings.HasSuffix(out, "Exiting...\n") {
		t.Errorf("stdout = %q, want exit at end of input", out)
	}
}
