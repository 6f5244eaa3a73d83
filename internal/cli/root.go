package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/artpar/reqpane/internal/config"
	"github.com/artpar/reqpane/internal/core"
	"github.com/artpar/reqpane/internal/session"
	"github.com/artpar/reqpane/internal/tui/components"
	"github.com/artpar/reqpane/internal/tui/views"
	"github.com/artpar/reqpane/internal/tui/vim"
)

// NewRootCommand creates the root command. Without a subcommand it runs the
// interactive composer.
func NewRootCommand(version string) *cobra.Command {
	globals := &GlobalOptions{version: version}
	var method string

	cmd := &cobra.Command{
		Use:     "reqpane [URL]",
		Short:   "reqpane - a modal terminal HTTP request composer",
		Long:    "reqpane edits a request in panes (URL, params, method, headers, body), sends it and shows the response.",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := core.ParseMethod(method)
			if err != nil {
				return err
			}
			var url string
			if len(args) == 1 {
				url = args[0]
			}
			return runTUI(cmd, globals, session.WithRequest(m, url))
		},
	}
	globals.register(cmd)
	cmd.Flags().StringVarP(&method, "method", "X", "GET", "Initial request method")

	cmd.AddCommand(NewSendCommand(globals))

	return cmd
}

// newComposer builds the composer view for cfg. opts are applied to the
// session after the key map and logger.
func newComposer(ctx context.Context, cfg config.Config, version string, logOut io.Writer, opts ...session.Option) (*views.ComposerView, func() error, error) {
	logger, closeLog, err := openLogger(cfg, logOut)
	if err != nil {
		return nil, nil, err
	}

	keys := vim.DefaultKeyMap()
	if err := cfg.ApplyKeys(keys); err != nil {
		closeLog()
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	sessOpts := append([]session.Option{session.WithKeyMap(keys), session.WithLogger(logger)}, opts...)
	sess := session.New(newApp(cfg, version, logger), sessOpts...)
	view := views.NewComposerView(ctx, sess,
		views.WithFormatter(components.NewFormatter(cfg.Highlight, cfg.HighlightStyle)),
	)
	return view, closeLog, nil
}

// runTUI starts the TUI application
func runTUI(cmd *cobra.Command, globals *GlobalOptions, opts ...session.Option) error {
	cfg, err := globals.resolve(cmd)
	if err != nil {
		return err
	}

	view, closeLog, err := newComposer(cmd.Context(), cfg, globals.version, nil, opts...)
	if err != nil {
		return err
	}
	defer closeLog()

	p := tea.NewProgram(view, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
