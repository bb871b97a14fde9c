// Package run drives a live timer session.
package run

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/pomo/pkg/app"
	"tableflip.dev/pomo/pkg/history"
	"tableflip.dev/pomo/pkg/notify"
	"tableflip.dev/pomo/pkg/sound"
	"tableflip.dev/pomo/pkg/store"
	"tableflip.dev/pomo/pkg/tui/session"
)

// Run assembles the service and keeps it ticking until the user quits. With
// Headless set there is no UI; the session runs until interrupted.
type Run struct {
	Persistence store.Persistence
	History     *history.Store
	Sound       sound.Player
	Notifier    notify.Notifier
	Headless    bool
}

func (n *Run) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not run, no persistence")
	}

	svc := app.New(app.Options{
		Persistence: n.Persistence,
		History:     n.History,
		Sound:       n.Sound,
		Notifier:    n.Notifier,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- svc.Run(ctx)
	}()

	svc.Start()

	if n.Headless {
		sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-sigCtx.Done()
		cancel()
		return <-done
	}

	p := tea.NewProgram(session.New(svc))
	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return err
	}

	cancel()
	return <-done
}
