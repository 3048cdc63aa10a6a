// Package cli wires the styleai commands. Scriptable subcommands cover every
// backend operation; a bare invocation starts the interactive TUI.
package cli

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	styleai "github.com/styleai/styleai-go"
)

// App carries the per-invocation wiring shared by all subcommands.
type App struct {
	BaseURL string `envconfig:"BASE_URL" default:"http://localhost:8000"`
	Debug   bool   `envconfig:"DEBUG"`

	client *styleai.Client
}

// Client lazily constructs the SDK client with the persisted session attached.
func (a *App) Client() (*styleai.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	dir, err := styleai.DefaultSessionDir()
	if err != nil {
		return nil, fmt.Errorf("resolve session dir: %w", err)
	}
	store := styleai.NewSessionStore(dir)
	if err := store.Hydrate(); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	opts := []styleai.Option{styleai.WithSessionStore(store)}
	if a.Debug {
		opts = append(opts, styleai.WithDebugLogging(true))
	}
	a.client = styleai.New(a.BaseURL, opts...)
	return a.client, nil
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "styleai",
		Short:        "AI outfit styling from the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  styleai

  # Scriptable commands
  styleai login --email ada@example.com
  styleai generate --occasion Wedding --country US --state California
  styleai wardrobe upload --category Tops shirt.png
  styleai history
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := envconfig.Process("STYLEAI", app); err != nil {
				return fmt.Errorf("read environment: %w", err)
			}
			if v, _ := cmd.Flags().GetString("base-url"); v != "" {
				app.BaseURL = v
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.client != nil {
				_ = app.client.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().String("base-url", "", "backend base URL (overrides STYLEAI_BASE_URL)")

	cmd.AddCommand(
		newRegisterCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newGenerateCmd(app),
		newSuggestCmd(app),
		newHistoryCmd(app),
		newShowCmd(app),
		newWardrobeCmd(app),
		newCountriesCmd(app),
	)
	return cmd
}
