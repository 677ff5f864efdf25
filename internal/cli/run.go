package cli

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tessro/riffle/internal/audio"
	"github.com/tessro/riffle/internal/core"
	rerrors "github.com/tessro/riffle/internal/errors"
	"github.com/tessro/riffle/internal/playback"
	"github.com/tessro/riffle/internal/repl"
	"github.com/tessro/riffle/internal/source"
	"github.com/tessro/riffle/internal/tail"
)

func run(cmd *cobra.Command, args []string) error {
	log, closeLog, err := newLogger(cfg.Log, verbose, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	scratch, err := source.NewScratch(cfg.Downloader.ScratchDir)
	if err != nil {
		return rerrors.WithSuggestion(err, "check downloader.scratch_dir or --scratch-dir")
	}
	defer func() {
		if err := scratch.Close(); err != nil {
			log.Warn().Err(err).Str("dir", scratch.Dir()).Msg("failed to remove scratch dir")
		}
	}()
	log.Debug().Str("dir", scratch.Dir()).Msg("scratch dir ready")

	buffer := time.Duration(cfg.Player.BufferMs) * time.Millisecond
	out, err := playback.NewOutput(cfg.Player.SampleRate, buffer)
	if err != nil {
		return rerrors.WithSuggestion(err, "check that an audio output device is available")
	}
	defer out.Close()
	log.Debug().Int("sample_rate", out.SampleRate()).Dur("buffer", buffer).Msg("audio output ready")

	queue := playback.NewQueue()
	queue.OnFinish(func(t core.Track) {
		log.Debug().Str("title", t.Title).Msg("track finished")
	})
	out.Attach(queue)

	opts := source.DownloadOptions{
		Format:      cfg.Downloader.Format,
		AudioFormat: cfg.Downloader.AudioFormat,
		ExtraArgs:   cfg.Downloader.ExtraArgs,
	}
	resolver := source.NewResolver(source.NewYTDLP(cfg.Downloader.Binary), scratch, opts, log)

	d := repl.New(repl.Options{
		Resolver:    resolver,
		Decoder:     audio.NewDecoder(out.SampleRate()),
		Queue:       queue,
		Out:         cmd.OutOrStdout(),
		Err:         cmd.ErrOrStderr(),
		Prompt:      cfg.Player.Prompt,
		Interactive: term.IsTerminal(int(os.Stdin.Fd())),
		Logger:      &log,
	})

	stop := ignoreInterrupts(log)
	defer stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher := tail.NewWatcher(queue, 0)
	go watcher.Start(ctx)
	defer watcher.Stop()
	go tail.Log(watcher.Events(), log.With().Str("component", "queue").Logger(), tail.NewFormatter())

	if len(args) > 0 {
		res := d.Play(ctx, args...)
		if res.HasErrors() {
			log.Debug().Int("enqueued", res.Data).Str("errors", res.ErrorSummary()).Msg("startup references")
		}
	}

	return d.Run(ctx, cmd.InOrStdin())
}

// ignoreInterrupts swallows os.Interrupt until stop is called.
func ignoreInterrupts(log zerolog.Logger) (stop func()) {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, os.Interrupt)

	go func() {
		for {
			select {
			case <-sigs:
				log.Debug().Msg("interrupt ignored, type exit to quit")
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
