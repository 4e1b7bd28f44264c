package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/tlf-contrib/fldigilink/internal/cliconfig"
	"github.com/tlf-contrib/fldigilink/pkg/fldigi"
	"github.com/tlf-contrib/fldigilink/pkg/log"
)

const longHelp = `Remote-control bridge between the Tlf contest logger and fldigi.

fldigilink talks to fldigi over XML-RPC: it keys the transmitter with
operator text, streams decoded receive text, and keeps the RTTY audio
carrier centered when rig control is active.

Configuration is read from $HOME/.fldigilink/config.toml, then FLDIGILINK_*
environment variables, then flags; later sources win.`

var exampleUsage = strings.TrimSpace(`
  fldigilink status
  fldigilink send "CQ TEST DL1ABC DL1ABC TEST"
  fldigilink monitor --rig-mode RTTY --rig-control
  fldigilink rx --url http://shack-pc:7362/RPC2
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// cliContext carries configuration and the client between cobra hooks and
// subcommands.
type cliContext struct {
	cfg     cliconfig.Config
	cfgPath string
	logger  zerolog.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fldigilink:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	ctx := &cliContext{cfg: cliconfig.DefaultConfig()}

	root := &cobra.Command{
		Use:           "fldigilink",
		Short:         "Remote-control bridge between Tlf and fldigi",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&ctx.cfgPath, "config", "", "path to config file (default: $HOME/.fldigilink/config.toml)")
	flags.StringVar(&ctx.cfg.URL, "url", ctx.cfg.URL, "fldigi XML-RPC endpoint")
	flags.StringVar(&ctx.cfg.Transport, "transport", ctx.cfg.Transport,
		fmt.Sprintf("RPC transport (%s)", strings.Join(fldigi.AvailableTransports(), ", ")))
	flags.DurationVar(&ctx.cfg.Timeout, "timeout", ctx.cfg.Timeout, "timeout of a single remote call")
	flags.DurationVar(&ctx.cfg.PollInterval, "poll", ctx.cfg.PollInterval, "monitor poll interval")
	flags.DurationVar(&ctx.cfg.SettleDelay, "settle-delay", ctx.cfg.SettleDelay, "pause after forcing fldigi out of transmit")
	flags.IntVar(&ctx.cfg.BreakerThreshold, "breaker-threshold", ctx.cfg.BreakerThreshold, "calls skipped after a transport fault")
	flags.StringVar(&ctx.cfg.RigMode, "rig-mode", ctx.cfg.RigMode, "rig mode (USB, LSB, RTTY, RTTYR, ...)")
	flags.BoolVar(&ctx.cfg.RigControl, "rig-control", ctx.cfg.RigControl, "rig control is active")
	flags.StringVar(&ctx.cfg.LogLevel, "log-level", ctx.cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.BoolVar(&ctx.cfg.Disabled, "disabled", ctx.cfg.Disabled, "disable remote control")

	root.AddCommand(
		newSendCommand(ctx),
		newRXCommand(ctx),
		newMonitorCommand(ctx),
		newStatusCommand(ctx),
	)
	return root
}

// load applies the config file and environment underneath explicitly set
// flags, then validates the result.
func (c *cliContext) load(cmd *cobra.Command) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	path := c.configPath()
	if path != "" && cliconfig.FileExists(path) {
		fc, err := cliconfig.LoadFileConfig(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	} else if c.cfgPath != "" {
		return fmt.Errorf("config file %s not found", c.cfgPath)
	}

	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	c.logger = cliconfig.Logger(cmd.ErrOrStderr(), c.cfg.LogLevel)
	c.logger.Debug().Interface("config", c.cfg).Str("file", path).Msg("configuration")
	return nil
}

func (c *cliContext) configPath() string {
	if c.cfgPath != "" {
		return c.cfgPath
	}
	return cliconfig.DefaultConfigPath()
}

// newClient builds the fldigi client from the loaded configuration.
func (c *cliContext) newClient(opts ...fldigi.Option) (*fldigi.Client, error) {
	libCfg, err := c.cfg.Library()
	if err != nil {
		return nil, err
	}
	opts = append([]fldigi.Option{
		fldigi.WithLogger(log.NewZerologAdapterWithLogger(c.logger)),
	}, opts...)

	client, err := fldigi.New(libCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	c.logger.Info().Msg(client.StatusLine())
	return client, nil
}
