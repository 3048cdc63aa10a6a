package cli

import "github.com/styleai/styleai-go/internal/tui"

func runTUI(app *App) error {
	c, err := app.Client()
	if err != nil {
		return err
	}
	return tui.Run(c)
}
