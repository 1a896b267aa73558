package cli

import (
	"context"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophboard/internal/client/config"
	"github.com/dmitrijs2005/gophboard/internal/client/tui"
	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/spf13/cobra"
)

// Board opens the terminal board.
func (a *App) Board(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	return tui.Run(ctx, a.ctrl, tui.Options{
		Timeout:       a.config.RequestTimeout,
		MarkdownStyle: a.markdownStyle(),
		PageSize:      common.DefaultDeletedPageSize,
	})
}

func newRootCmd(app *App) *cobra.Command {
	var (
		flags   config.Config
		cfgPath string
	)

	cmd := &cobra.Command{
		Use:          "gophboard",
		Short:        "Personal kanban board client",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Create a key and sign in
  gophboard keygen
  gophboard login

  # Start the interactive board
  gophboard

  # Scriptable commands
  gophboard add -c doing "Write release notes"
  gophboard mv <id> done
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Board(cmd.Context())
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath, &flags, cmd.Flags().Changed)
			if err != nil {
				return err
			}
			return app.open(cmd.Context(), cfg)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgPath, config.FlagConfig, "", "JSON config file")
	pf.StringVar(&flags.ServerEndpointAddr, config.FlagServer, "", "server base URL")
	pf.StringVar(&flags.DatabasePath, config.FlagDatabase, "", "local session database")
	pf.StringVar(&flags.KeyFile, config.FlagKeyFile, "", "wallet key file")
	pf.DurationVar(&flags.RequestTimeout, config.FlagTimeout, 0, "timeout of a single request")
	pf.DurationVar(&flags.RefreshBefore, config.FlagRefreshBefore, 0, "renew the credential this long before it expires")
	pf.StringVar(&flags.LogFile, config.FlagLogFile, "", "write debug logs to this file")

	board := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Board(cmd.Context())
		},
	}
	cmd.AddCommand(board)
	cmd.AddCommand(newAuthCmds(app)...)
	cmd.AddCommand(newItemCmds(app)...)
	cmd.AddCommand(newTrashCmds(app)...)
	return cmd
}

// Execute runs the client with args and returns the first error.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	app := newApp(in, out)
	defer app.Close()

	cmd := newRootCmd(app)
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return cmd.ExecuteContext(ctx)
}
