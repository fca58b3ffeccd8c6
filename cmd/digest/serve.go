package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pbaille/digest/internal/api"
	"github.com/pbaille/digest/internal/reorder"
)

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.cfg.Classifier()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.Server.Addr
			}

			engine := reorder.New(c, a.cfg.Categories.Verbatim)
			server := api.New(c, engine, a.cfg.Sort.Layout, addr, a.runID, a.logger)
			a.logger.Debug("Serving", zap.Strings("categories", c.Order()))
			return server.Run()
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "server address (default from config)")
	return cmd
}
