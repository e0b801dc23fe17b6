package main

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/ankek/domcapture/internal/capture"
	"github.com/ankek/domcapture/internal/config"
	"github.com/ankek/domcapture/internal/logging"
)

// app holds what every command needs once flags and config are resolved.
type app struct {
	cfg    *config.Config
	logger hclog.Logger
	stderr io.Writer
}

// sinks returns the capture sink factory. Capture diagnostics go through the
// process logger under the "capture" name, tagged with the target selector.
func (a *app) sinks(target string) capture.SinkFactory {
	base := a.logger.Named("capture")
	return func(enabled bool) capture.Logger {
		return logging.New(base, enabled).With("target", target)
	}
}

// capturer builds a Capturer for one target over env and pipeline.
func (a *app) capturer(env capture.Environment, pipeline capture.Pipeline, target string) *capture.Capturer {
	return capture.New(env, pipeline,
		capture.WithDiagnosticMode(a.cfg.Capture.Diagnostic),
		capture.WithSinkFactory(a.sinks(target)),
		capture.WithVersion(version),
	)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr}

	var cfgFile string

	root := &cobra.Command{
		Use:   "domcapture",
		Short: "Render DOM snapshots and live pages to images",
		Long: `domcapture captures a document or a single element as a raster image.

Snapshots are YAML or JSON layout dumps read from a file or an http(s) URL.
The browse command snapshots a live page in headless Chrome instead.

Settings are read from domcapture.yaml (current directory or
$HOME/.config/domcapture), DOMCAPTURE_* environment variables and flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := config.NewViper(cfgFile)
			flags := cmd.Root().PersistentFlags()
			for key, name := range map[string]string{
				"logging.level":      "log-level",
				"logging.json":       "log-json",
				"capture.diagnostic": "diagnostic",
				"capture.profile":    "profile",
			} {
				if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
					return fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}

			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.NewBase(logging.Options{
				Level:  cfg.Logging.Level,
				JSON:   cfg.Logging.JSON,
				Output: a.stderr,
			})
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./domcapture.yaml or $HOME/.config/domcapture/domcapture.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().Bool("log-json", false, "write log lines as JSON")
	root.PersistentFlags().Bool("diagnostic", false, "log capture failures before reporting them")
	root.PersistentFlags().String("profile", "", "HCL file of default capture options")

	root.AddCommand(
		newCaptureCmd(a),
		newBrowseCmd(a),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the domcapture version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "domcapture %s\n", version)
		},
	}
}
