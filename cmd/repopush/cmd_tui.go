package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"repopush/internal/eventbus"
	"repopush/internal/ui"
)

var errNoTerminal = errors.New("interactive mode needs a terminal; see 'repopush --help' for headless commands")

// forwardedEvents are shown on the activity line
var forwardedEvents = []eventbus.EventType{
	eventbus.EventOperationStarted,
	eventbus.EventOperationFailed,
	eventbus.EventPatUpdated,
	eventbus.EventReposLoaded,
	eventbus.EventRepoAdded,
	eventbus.EventCommitCompleted,
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New(s.logger)
	defer bus.Close()

	model := ui.NewModel(s.coordinator(ctx, bus), s.cfg, s.logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	eventChan := make(chan eventbus.DomainEvent, 100)
	for _, eventType := range forwardedEvents {
		bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			select {
			case eventChan <- e:
			default:
				s.logger.Warn("event channel full, dropping event", zap.String("type", string(e.Type())))
			}
		})
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-done:
				return
			}
		}
	}()

	s.logger.Info("starting UI", zap.String("base_url", s.cfg.Backend.BaseURL))
	_, err = p.Run()
	close(done)
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		s.logger.Error("error running program", zap.Error(err))
		return err
	}
	s.logger.Info("UI exited")
	return nil
}
