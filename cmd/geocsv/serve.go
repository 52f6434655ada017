// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wneessen/geocsv/internal/logger"
	"github.com/wneessen/geocsv/internal/service"
	"github.com/wneessen/geocsv/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "run the web interface for uploading CSV files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listen != "" {
				a.conf.Server.Listen = listen
			}
			return a.serve(cmd)
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "address the HTTP server listens on")
	return cmd
}

func (a *app) serve(cmd *cobra.Command) error {
	serv, err := service.New(a.conf, a.log)
	if err != nil {
		a.log.Error("failed to initialize geocoding service", logger.Err(err))
		return err
	}
	server, err := web.NewServer(serv, a.conf, a.log)
	if err != nil {
		a.log.Error("failed to initialize HTTP server", logger.Err(err))
		return err
	}

	a.log.Info("starting geocsv service", slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))
	group, ctx := errgroup.WithContext(cmd.Context())
	group.Go(func() error {
		return serv.Run(ctx)
	})
	group.Go(func() error {
		return server.ListenAndServe(ctx, a.conf.Server.Listen)
	})
	if err = group.Wait(); err != nil {
		a.log.Error("geocsv service failed", logger.Err(err))
		return err
	}
	a.log.Info("shutting down geocsv service")
	return nil
}
