package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/malbeclabs/nftstake/client/stakeview/internal/actions"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/app"
	"github.com/malbeclabs/nftstake/config"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// runApp resolves settings, builds the app and runs fn with a context that
// is cancelled on SIGINT or SIGTERM.
func runApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App, settings *config.Settings) error) error {
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	log := newLogger(cmd.ErrOrStderr(), verbose)

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log.Debug("resolved settings", "env", settings.Network.Moniker, "rpc", settings.Network.RPCURL, "ws", settings.Network.WSRPCURL, "program", settings.Network.ProgramID)

	a, err := app.New(&app.Config{Logger: log, Settings: settings})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer a.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return fn(ctx, a, settings)
}

// printNotice writes a successful notice and turns a failed one into an error.
func printNotice(w io.Writer, n actions.Notice) error {
	if !n.OK() {
		if n.Err != nil {
			return fmt.Errorf("%s: %w", n.Message, n.Err)
		}
		return fmt.Errorf("%s", n.Message)
	}
	fmt.Fprintln(w, n.Message)
	fmt.Fprintln(w, "Signature:", n.Signature)
	return nil
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.SetRowLine(true)
	table.SetHeader(header)
	return table
}
