package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wukong/internal/color"
	"wukong/internal/tui/controller"
	"wukong/internal/tui/model"
	"wukong/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// runTUIMode runs the dispatcher and the optional debug server next to the
// terminal program and stops them when the program exits.
func runTUIMode(ctx context.Context, config *Config, services *Services) error {
	color.Initialize(color.DetectDarkMode())

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		if err := services.Dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	if srv := services.DebugServer; srv != nil {
		addr := config.WukongConfig.Dashboard.DebugAddr
		g.Go(func() error {
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				logging.Error("TUI-Lifecycle", err, "debug server on %s stopped", addr)
			}
			return nil
		})
	}

	dash := config.WukongConfig.Dashboard
	p := controller.NewProgram(model.Config{
		Session:      services.Session,
		Events:       services.Dispatcher,
		TickInterval: dash.TickInterval,
		TailInterval: dash.TailInterval,
	}, tea.WithContext(ctx))

	logging.Info("TUI-Lifecycle", "starting dashboard")
	_, runErr := p.Run()
	cancel()
	waitErr := g.Wait()

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		logging.Error("TUI-Lifecycle", runErr, "Error running TUI program")
		return fmt.Errorf("dashboard: %w", runErr)
	}
	logging.Info("TUI-Lifecycle", "TUI exited.")
	return waitErr
}
