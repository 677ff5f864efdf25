package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tessro/riffle/internal/audio"
	"github.com/tessro/riffle/internal/core"
	rerrors "github.com/tessro/riffle/internal/errors"
	"github.com/tessro/riffle/internal/source"
)

// Resolver turns a classified reference into a local file.
type Resolver interface {
	Resolve(ctx context.Context, ref core.Reference) (*source.Resolved, error)
}

// Decoder opens a resolved file as a playable stream.
type Decoder interface {
	Open(res *source.Resolved) (*audio.Stream, error)
}

// Queue is the transport surface the dispatcher drives.
type Queue interface {
	Enqueue(s *audio.Stream) (started bool)
	Pause()
	Resume()
	Toggle() (paused bool)
	Skip(n int) (skipped int)
	Clear()
	Stop()
	Len() int
	Snapshot() core.Queue
}

type state int

const (
	stateRunning state = iota
	stateExiting
)

// Options configures a Dispatcher.
type Options struct {
	Resolver Resolver
	Decoder  Decoder
	Queue    Queue

	Out io.Writer
	Err io.Writer

	// Prompt is printed before each read when Interactive is set.
	Prompt      string
	Interactive bool

	Logger *zerolog.Logger
}

// Dispatcher reads commands one line at a time and applies them to the queue.
type Dispatcher struct {
	resolver Resolver
	decoder  Decoder
	queue    Queue

	out       io.Writer
	err       io.Writer
	outStyles Styles
	errStyles Styles

	prompt      string
	interactive bool

	log   zerolog.Logger
	state state
}

// New creates a dispatcher in the running state.
func New(opts Options) *Dispatcher {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "repl").Logger()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Err == nil {
		opts.Err = opts.Out
	}

	return &Dispatcher{
		resolver:    opts.Resolver,
		decoder:     opts.Decoder,
		queue:       opts.Queue,
		out:         opts.Out,
		err:         opts.Err,
		outStyles:   NewStyles(opts.Out),
		errStyles:   NewStyles(opts.Err),
		prompt:      opts.Prompt,
		interactive: opts.Interactive,
		log:         log,
		state:       stateRunning,
	}
}

// Run reads lines from in until exit or end of input. End of input is
// handled like the exit command. Lines may be of any length.
func (d *Dispatcher) Run(ctx context.Context, in io.Reader) error {
	r := bufio.NewReader(in)

	for d.state == stateRunning {
		if d.interactive {
			fmt.Fprint(d.out, d.prompt)
		}

		line, err := r.ReadString('\n')
		if line != "" {
			d.Execute(ctx, strings.TrimRight(line, "\r\n"))
		}
		if err == nil {
			continue
		}

		if d.state == stateRunning {
			if d.interactive {
				fmt.Fprintln(d.out)
			}
			d.log.Debug().Msg("end of input")
			d.Execute(ctx, "exit")
		}
		if err != io.EOF {
			return fmt.Errorf("failed to read input: %w", err)
		}
		return nil
	}

	return nil
}

// Execute handles one line of input and returns false once the dispatcher is
// exiting.
func (d *Dispatcher) Execute(ctx context.Context, line string) bool {
	if d.state == stateExiting {
		return false
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	cmd, args := fields[0], fields[1:]
	d.log.Debug().Str("command", cmd).Strs("args", args).Msg("dispatch")

	switch cmd {
	case "play":
		d.play(ctx, args)
	case "pause":
		d.queue.Pause()
	case "resume":
		d.queue.Resume()
	case "p":
		d.queue.Toggle()
	case "n", "next":
		d.next()
	case "s", "skip":
		d.skip(args)
	case "clear", "c", "stop":
		d.queue.Clear()
		d.println("Audio Stopped")
	case "list", "ls":
		d.list()
	case "help", "?":
		d.help()
	case "exit":
		d.state = stateExiting
	default:
		d.fail(fmt.Errorf("%w: %s", rerrors.ErrUnknownCommand, cmd))
	}

	d.status()

	if d.state == stateExiting {
		d.exit()
		return false
	}
	return true
}

// Play enqueues refs as if "play" had been typed with them and reports the
// queue status. Data holds the number of references enqueued.
func (d *Dispatcher) Play(ctx context.Context, refs ...string) *rerrors.PartialResult[int] {
	res := d.play(ctx, refs)
	d.status()
	return res
}

// play enqueues every reference in args. A bare "play" is treated as an
// empty reference so the user still sees why nothing happened.
func (d *Dispatcher) play(ctx context.Context, args []string) *rerrors.PartialResult[int] {
	if len(args) == 0 {
		args = []string{""}
	}
	res := &rerrors.PartialResult[int]{}
	for _, raw := range args {
		if err := d.enqueue(ctx, raw); err != nil {
			res.AddError(err)
			continue
		}
		res.Data++
	}
	return res
}

func (d *Dispatcher) enqueue(ctx context.Context, raw string) error {
	ref := source.Classify(raw)
	if ref.IsRemote() {
		d.notice("Remote link found, downloading audio...")
	}

	res, err := d.resolver.Resolve(ctx, ref)
	if err != nil {
		d.fail(err)
		return err
	}

	s, err := d.decoder.Open(res)
	if err != nil {
		d.fail(err)
		return err
	}

	if ref.IsRemote() {
		d.notice(fmt.Sprintf("Downloaded %s %s", s.Track.Title, trackDetails(s.Track)))
	}

	if d.queue.Enqueue(s) {
		d.println(d.outStyles.Playing.Render("Playing Audio..."))
	} else {
		d.println("Adding audio to queue...")
	}
	d.log.Debug().Str("title", s.Track.Title).Str("path", s.Track.Path).Msg("enqueued")
	return nil
}

func (d *Dispatcher) next() {
	if d.queue.Len() == 0 {
		d.println("No more audio to play")
	} else {
		d.println("Playing Next Song...")
	}
	d.queue.Skip(1)
}

func (d *Dispatcher) skip(args []string) {
	count := 1
	if len(args) > 0 {
		count = parseCount(args[0])
		if count < 0 {
			d.log.Debug().Err(rerrors.ErrInvalidArgument).Str("arg", args[0]).Msg("skip count defaulted to 1")
			count = 1
		}
	}

	d.println(fmt.Sprintf("Skipping %d Song(s)...", count))
	if skipped := d.queue.Skip(count); skipped < count {
		d.println("No more audio to play")
	}
}

// parseCount parses a non-negative count, returning -1 when arg is not one.
func parseCount(arg string) int {
	n, err := strconv.ParseInt(arg, 10, 0)
	if err != nil || n < 0 {
		return -1
	}
	return int(n)
}

func (d *Dispatcher) list() {
	q := d.queue.Snapshot()
	if q.IsEmpty() {
		d.println("Queue is empty")
		return
	}

	for i, t := range q.Tracks {
		prefix := "  "
		if i == 0 {
			prefix = d.outStyles.StatusIcon(q.Paused) + " "
		}
		d.println(fmt.Sprintf("%s%d. %s %s", prefix, i+1, t.Title, trackDetails(t)))
	}
}

var helpLines = []string{
	"play <file|link>...  resolve and enqueue audio",
	"pause | resume | p   pause, resume or toggle playback",
	"n, next              skip to the next song",
	"s, skip [count]      skip count songs (default 1)",
	"clear, c, stop       stop and empty the queue",
	"list, ls             show the queue",
	"exit                 stop playback and quit",
}

func (d *Dispatcher) help() {
	for _, l := range helpLines {
		d.println(l)
	}
}

// status reports the queue depth after every non-empty command.
func (d *Dispatcher) status() {
	if n := d.queue.Len(); n > 0 {
		d.println(fmt.Sprintf("Position in queue: %d", n))
	} else {
		d.println("No audio in queue")
	}
}

func (d *Dispatcher) exit() {
	d.println("Exiting...")
	d.queue.Stop()
	d.log.Debug().Msg("playback stopped")
}

func (d *Dispatcher) fail(err error) {
	d.log.Debug().Err(err).Msg("command failed")
	fmt.Fprintln(d.err, d.errStyles.Error.Render(rerrors.Format(err)))
}

func (d *Dispatcher) notice(msg string) {
	fmt.Fprintln(d.out, d.outStyles.Notice.Render(msg))
}

func (d *Dispatcher) println(msg string) {
	fmt.Fprintln(d.out, msg)
}
