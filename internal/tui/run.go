package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yourusername/ytdl-gateway/internal/client"
)

// Run drives controller and renders it until the user quits or ctx ends
func Run(ctx context.Context, controller *client.Controller) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(
		New(controller, controller.Snapshot()),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)

	// Only the newest snapshot matters; the controller never waits on the renderer
	updates := make(chan client.AppState, 1)
	controller.OnChange(func(s client.AppState) {
		select {
		case <-updates:
		default:
		}
		updates <- s
	})

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case s := <-updates:
				program.Send(stateMsg(s))
			}
		}
	}()

	go controller.Run(ctx)

	_, err := program.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
