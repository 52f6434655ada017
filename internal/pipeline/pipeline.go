// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/wneessen/geocsv/internal/geocode"
	"github.com/wneessen/geocsv/internal/logger"
	"github.com/wneessen/geocsv/internal/table"
)

const (
	AddressColumn = "address"
	MapLinkColumn = "map_link"
)

// Options configures a Pipeline.
type Options struct {
	Delimiter   rune
	Concurrency int
}

// Pipeline turns an uploaded CSV table into its geocoded counterpart.
type Pipeline struct {
	resolver Resolver
	opts     Options
	logger   *logger.Logger
}

// Batch is a parsed and normalized table that is ready to be geocoded.
type Batch struct {
	Columns table.Columns

	pipeline *Pipeline
	table    *table.Table
	coords   []geocode.Coordinate
	driver   *Driver
}

// Output is the geocoded table and its serialized form.
type Output struct {
	Table   *table.Table
	Data    []byte
	Summary Summary
}

func New(resolver Resolver, opts Options, log *logger.Logger) *Pipeline {
	return &Pipeline{
		resolver: resolver,
		opts:     opts,
		logger:   log,
	}
}

// Prepare parses the input, resolves the coordinate columns and normalizes every row. The
// returned errors wrap table.ErrInputUnreadable or table.ErrColumnsNotFound.
func (p *Pipeline) Prepare(input io.Reader) (*Batch, error) {
	tbl, err := table.Parse(input, p.opts.Delimiter)
	if err != nil {
		return nil, err
	}
	cols, err := table.ResolveColumns(tbl.Header)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("detected coordinate columns", slog.String("latitude", cols.LatitudeName),
		slog.String("longitude", cols.LongitudeName), slog.Int("rows", tbl.Len()))

	return &Batch{
		Columns:  cols,
		pipeline: p,
		table:    tbl,
		coords:   tbl.Normalize(cols),
		driver:   NewDriver(p.resolver, p.opts.Concurrency),
	}, nil
}

// Rows returns the number of rows in the batch.
func (b *Batch) Rows() int {
	return b.table.Len()
}

// State returns the driver state and the number of processed rows.
func (b *Batch) State() (State, int) {
	return b.driver.State()
}

// Run geocodes every row, appends the derived columns and serializes the table. Nothing is
// returned before all rows have been processed.
func (b *Batch) Run(ctx context.Context, progress ProgressFunc) (*Output, error) {
	results, err := b.driver.Run(ctx, b.coords, progress)
	if err != nil {
		return nil, err
	}

	addresses := make([]string, len(results))
	links := make([]string, len(results))
	for i, result := range results {
		addresses[i] = result.Outcome.Cell()
		links[i] = result.MapLink
	}
	if _, err = b.table.Append(AddressColumn, addresses); err != nil {
		return nil, fmt.Errorf("%w: %w", table.ErrOutputSerialization, err)
	}
	if b.pipeline.resolver.MapLinks() {
		if _, err = b.table.Append(MapLinkColumn, links); err != nil {
			return nil, fmt.Errorf("%w: %w", table.ErrOutputSerialization, err)
		}
	}

	buf := bytes.NewBuffer(nil)
	if err = b.table.WriteCSV(buf, b.pipeline.opts.Delimiter); err != nil {
		return nil, err
	}

	summary := Summarize(results)
	b.pipeline.logger.Debug("geocoding batch completed", slog.Any("summary", summary))
	return &Output{Table: b.table, Data: buf.Bytes(), Summary: summary}, nil
}
