// Command tui is a terminal display client for a sketchpad scene. With
// SKETCHPAD_SERVER set it joins the server's relay for SKETCHPAD_ORIGIN;
// otherwise the scene lives in memory for the session.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/inamate/sketchpad/internal/config"
	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/relay"
	"github.com/inamate/sketchpad/internal/scene"
	"github.com/inamate/sketchpad/internal/storage"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	// The screen owns stdout, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			slog.Error("open log file", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug})))

	if err := run(cfg); err != nil {
		slog.Error("tui exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Client) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Remote updates are handed to the event loop, which owns the store.
	dispatch := make(chan func())
	opts := []scene.Option{scene.WithDispatch(func(fn func()) {
		select {
		case dispatch <- fn:
		case <-ctx.Done():
		}
	})}

	var kv storage.WatchKV = storage.NewMemory()
	syncLabel := "local"
	if cfg.Server != "" {
		remote, err := relay.Dial(ctx, cfg.Server, cfg.Origin)
		if err != nil {
			return err
		}
		defer remote.Close()
		kv = remote
		syncLabel = cfg.Server
		opts = append(opts, scene.WithSource(remote.ContextID()))
	}

	store := scene.NewStore(document.DefaultState())
	persist := scene.NewPersistence(store, kv, cfg.Origin, opts...)
	if err := persist.Load(ctx); err != nil {
		slog.Warn("load scene", "error", err)
	}
	if cfg.Sample && len(store.Shapes()) == 0 {
		engine.LoadSample(store)
	}
	go persist.Run(ctx)
	if err := persist.Watch(ctx, kv); err != nil {
		slog.Warn("watch scene", "error", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	term := newTerminal(screen, store, syncLabel)
	term.show()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !term.handle(ev) {
				return nil
			}
		case fn := <-dispatch:
			fn()
		}
		term.show()
	}
}
