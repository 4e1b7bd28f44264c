package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tlf-contrib/fldigilink/internal/cliconfig"
	"github.com/tlf-contrib/fldigilink/pkg/fldigi"
	"github.com/tlf-contrib/fldigilink/plugins/configwatcher"
)

func newSendCommand(ctx *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "send TEXT...",
		Short: "Transmit text, switching back to receive when done",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			return client.SendText(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func newRXCommand(ctx *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rx",
		Short: "Switch fldigi to receive immediately",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			return client.ToRX(cmd.Context())
		},
	}
}

func newMonitorCommand(ctx *cliContext) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Print received text and keep the RTTY carrier centered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := &printHandler{out: cmd.OutOrStdout(), logger: ctx.logger}
			opts := []fldigi.Option{fldigi.WithEventHandler(handler)}

			if path := ctx.configPath(); watch && path != "" && cliconfig.FileExists(path) {
				opts = append(opts, configwatcher.WithConfigWatcher(configwatcher.Config{Path: path}))
			}

			client, err := ctx.newClient(opts...)
			if err != nil {
				return err
			}
			defer client.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := client.Start(runCtx); err != nil {
				return fmt.Errorf("start monitor: %w", err)
			}

			<-runCtx.Done()
			ctx.logger.Info().Msg("stopping monitor")

			if err := client.Stop(); err != nil {
				return fmt.Errorf("stop monitor: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch-config", true, "reload rig settings when the config file changes")
	return cmd
}

func newStatusCommand(ctx *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show bridge and modem status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			snap, snapErr := client.Snapshot(cmd.Context())

			stdout := cmd.OutOrStdout()
			rows := buildStatusRows(snap, shouldColorize(stdout))
			fmt.Fprintln(stdout, renderTable([]string{"Item", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))

			if snapErr != nil {
				return fmt.Errorf("fldigi unreachable: %w", snapErr)
			}
			return nil
		},
	}
}

// printHandler writes received text to out and logs everything else.
type printHandler struct {
	fldigi.BaseEventHandler
	out    io.Writer
	logger zerolog.Logger
}

func (h *printHandler) OnText(e fldigi.TextEvent) {
	fmt.Fprint(h.out, e.Text)
}

func (h *printHandler) OnCarrierShift(e fldigi.CarrierShiftEvent) {
	h.logger.Info().
		Int("shift", e.Shift).
		Int("carrier", e.Carrier).
		Msg("carrier recentered, retune rig")
}

func (h *printHandler) OnStateChange(e fldigi.StateChangeEvent) {
	h.logger.Debug().
		Str("from", e.Previous.String()).
		Str("to", e.Current.String()).
		Str("reason", e.Reason).
		Msg("monitor state")
}
