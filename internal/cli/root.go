// Package cli builds the vectorkit command tree.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/CK6170/vectorkit/internal/config"
	"github.com/CK6170/vectorkit/internal/logger"
)

// Version variables. Set these at build time with -ldflags if desired.
var (
	AppVersion = "dev"
	AppBuild   = "local"
)

const rootLongDesc string = `vectorkit works with immutable N-dimensional vectors.

Vectors are written as comma separated components, e.g. "3,4" or "[1, 2, 3]".

  vectorkit format 1,1 --spec .3fh     Format in hyperspherical coordinates
  vectorkit eval 3,4 '*' 2             Evaluate an operator
  vectorkit encode 1,2,3               Print the binary encoding as hex
  vectorkit serve                      Run the HTTP + WebSocket API`

const rootShortDesc string = "vectorkit - N-dimensional vectors"

// flagKeys maps flag names to config keys. Every command binds the flags it
// defines through the same map.
var flagKeys = map[string]string{
	"debug":       "log.debug",
	"json-log":    "log.json",
	"pretty":      "log.pretty",
	"listen":      "server.listen",
	"max-body":    "server.max_body",
	"max-vectors": "server.max_vectors",
	"spec":        "display.format",
	"port":        "link.port",
	"baud":        "link.baud",
	"timeout-ms":  "link.timeout_ms",
}

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	cfg        *config.Config
	log        *slog.Logger
}

// NewRootCmd returns the vectorkit root command.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "vectorkit",
		Short:         rootShortDesc,
		Long:          rootLongDesc,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a config file (default: ./vectorkit.toml if present)")
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().Bool("json-log", false, "Log as JSON")
	cmd.PersistentFlags().Bool("pretty", true, "Log with the coloured console handler")

	cmd.AddCommand(
		newServeCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
		newFormatCmd(a),
		newIndexCmd(a),
		newEvalCmd(a),
		newExploreCmd(a),
		newLinkCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) load(cmd *cobra.Command) error {
	v, err := config.InitViper(a.configPath)
	if err != nil {
		return err
	}
	if err := config.BindFlags(v, cmd.Flags(), flagKeys); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(
		logger.WithDebug(cfg.Log.Debug),
		logger.WithPretty(cfg.Log.Pretty),
		logger.WithJSON(cfg.Log.JSON),
		logger.WithSource(cfg.Log.Debug),
		logger.WithWriter(cmd.ErrOrStderr()),
	)
	a.log.Debug("config loaded", "listen", cfg.Server.Listen, "port", cfg.Link.Port)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the vectorkit version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "vectorkit %s (%s)\n", AppVersion, AppBuild)
			return err
		},
	}
}
