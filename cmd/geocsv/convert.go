// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/wneessen/geocsv/internal/logger"
	"github.com/wneessen/geocsv/internal/pipeline"
	"github.com/wneessen/geocsv/internal/presenter"
	"github.com/wneessen/geocsv/internal/service"
)

const stdStream = "-"

type convertOptions struct {
	output      string
	mapLinks    string
	concurrency int
	preview     int
}

func newConvertCmd(a *app) *cobra.Command {
	opts := new(convertOptions)
	cmd := &cobra.Command{
		Use:   "convert <input.csv>",
		Short: "geocode a CSV file and write the table with an address column",
		Long: `convert reads a CSV file, detects its latitude and longitude columns and looks up
the address of every row. The table is written with an additional address column
once all rows have been processed. Use "-" to read from stdin or write to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.convert(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (defaults to the configured download filename)")
	cmd.Flags().StringVar(&opts.mapLinks, "map-links", "", "append a map_link column (google or osm)")
	cmd.Flags().Lookup("map-links").NoOptDefVal = "google"
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "number of rows geocoded in parallel")
	cmd.Flags().IntVar(&opts.preview, "preview", presenter.DefaultPreviewRows, "number of rows to preview, 0 disables the preview")
	return cmd
}

func (a *app) convert(cmd *cobra.Command, input string, opts *convertOptions) error {
	if opts.mapLinks != "" {
		a.conf.MapLinks.Enabled = true
		a.conf.MapLinks.Format = opts.mapLinks
	}
	if opts.concurrency > 0 {
		a.conf.Pipeline.Concurrency = opts.concurrency
	}
	if err := a.conf.Validate(); err != nil {
		return err
	}
	if opts.output == "" {
		opts.output = a.conf.Server.Filename
	}

	pres, err := presenter.New(presenter.DefaultMaxCellWidth)
	if err != nil {
		return err
	}
	serv, err := service.New(a.conf, a.log)
	if err != nil {
		a.log.Error("failed to initialize geocoding service", logger.Err(err))
		return err
	}

	reader, closer, err := openInput(cmd, input)
	if err != nil {
		return err
	}
	defer closer()

	bar := newProgressBar(cmd.ErrOrStderr())
	buf := bytes.NewBuffer(nil)
	output, err := serv.Convert(cmd.Context(), reader, buf, func(progress float64) {
		if bar != nil {
			_ = bar.Set(int(progress * 100))
		}
	})
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		a.log.Error("failed to geocode CSV file", slog.String("input", input), logger.Err(err))
		return err
	}

	// Keep stdout clean for the table when it is used as output
	report := cmd.OutOrStdout()
	if opts.output == stdStream {
		report = cmd.ErrOrStderr()
		if _, err = cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write geocoded CSV: %w", err)
		}
	} else if err = os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
		a.log.Error("failed to write output file", slog.String("output", opts.output), logger.Err(err))
		return err
	}

	return a.report(report, pres, output, opts)
}

func (a *app) report(w io.Writer, pres *presenter.Presenter, output *pipeline.Output, opts *convertOptions) error {
	if opts.preview > 0 {
		if err := pres.Preview(w, output.Table, opts.preview); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	if err := pres.Summary(w, output.Summary); err != nil {
		return err
	}
	if opts.output != stdStream {
		_, err := fmt.Fprintf(w, "written to %s\n", opts.output)
		return err
	}
	return nil
}

func openInput(cmd *cobra.Command, input string) (io.Reader, func(), error) {
	if input == stdStream {
		return cmd.InOrStdin(), func() {}, nil
	}
	file, err := os.Open(input)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input file: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}

// newProgressBar returns a progress bar if w is a terminal and nil otherwise.
func newProgressBar(w io.Writer) *progressbar.ProgressBar {
	file, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(file.Fd()) {
		return nil
	}
	return progressbar.NewOptions(100,
		progressbar.OptionSetDescription("Geocoding"),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)
}
