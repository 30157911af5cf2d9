package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/api"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the stateless roster solver over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = app.Cfg.ServerAddr
			}
			if addr == "" {
				addr = ":8080"
			}

			app.Logger.Info("Starting HTTP server", zap.String("addr", addr))
			fmt.Printf("Serving the roster solver on %s\n", addr)

			router := api.NewRouter(app.Logger)
			return router.Run(addr)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (defaults to server_addr from config, then :8080)")

	return cmd
}
