package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/TFMV/trustgraph/config"
	"github.com/TFMV/trustgraph/logging"
	"github.com/TFMV/trustgraph/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the interactive widget over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}

		log, err := logging.New(cfg.Verbose)
		if err != nil {
			return err
		}
		defer log.Sync()

		srv, err := server.New(cfg, log)
		if err != nil {
			return err
		}

		color.Cyan("trust graph at http://localhost:%d/", cfg.Port)
		return srv.Start()
	},
}

func init() {
	f := serveCmd.Flags()
	f.String("data", "", "path to a JSON data file of nodes and links")
	f.Int("port", 8080, "HTTP port")
	f.Float64("width", 800, "canvas width in pixels")
	f.Float64("height", 400, "canvas height in pixels")
	f.Int("iterations", 100, "simulation iteration budget per run")
	f.Bool("watch", false, "reload when the data file changes")
	f.Float64("drift", 0, "idle drift amplitude in pixels (0 disables)")
	f.Bool("verbose", false, "debug logging")
	rootCmd.AddCommand(serveCmd)
}
