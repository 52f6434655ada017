// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package pipeline drives the resolution of all coordinates of a table and assembles the
// geocoded output.
package pipeline

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wneessen/geocsv/internal/geocode"
)

// ErrAlreadyStarted is returned when a Driver is run more than once.
var ErrAlreadyStarted = errors.New("pipeline driver has already been started")

// State is the lifecycle state of a Driver.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateDone
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	default:
		return "not started"
	}
}

// ProgressFunc receives the fraction of processed rows after each row.
type ProgressFunc func(progress float64)

// Resolver resolves a single coordinate.
type Resolver interface {
	Resolve(ctx context.Context, coords geocode.Coordinate) geocode.Result
	MapLinks() bool
}

// Driver resolves a list of coordinates exactly once. Rows are processed in order unless
// concurrency is greater than one; results are always returned in input order.
type Driver struct {
	resolver    Resolver
	concurrency int

	mu        sync.RWMutex
	state     State
	processed int
}

func NewDriver(resolver Resolver, concurrency int) *Driver {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Driver{
		resolver:    resolver,
		concurrency: concurrency,
	}
}

// State returns the current state and the number of rows processed so far.
func (d *Driver) State() (State, int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state, d.processed
}

// Run resolves all coordinates and returns one result per coordinate. A failed row never
// stops the run. progress may be nil and is not called for an empty list.
func (d *Driver) Run(ctx context.Context, coords []geocode.Coordinate, progress ProgressFunc) ([]geocode.Result, error) {
	d.mu.Lock()
	if d.state != StateNotStarted {
		d.mu.Unlock()
		return nil, ErrAlreadyStarted
	}
	d.state = StateRunning
	d.mu.Unlock()

	results := make([]geocode.Result, len(coords))
	if d.concurrency == 1 {
		for i, c := range coords {
			results[i] = d.resolver.Resolve(ctx, c)
			d.completeRow(len(coords), progress)
		}
	} else {
		var group errgroup.Group
		group.SetLimit(d.concurrency)
		for i, c := range coords {
			group.Go(func() error {
				results[i] = d.resolver.Resolve(ctx, c)
				d.completeRow(len(coords), progress)
				return nil
			})
		}
		_ = group.Wait()
	}

	d.mu.Lock()
	d.state = StateDone
	d.mu.Unlock()
	return results, nil
}

// completeRow counts a finished row and reports the progress while holding the lock, so
// that reported values never decrease.
func (d *Driver) completeRow(total int, progress ProgressFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.processed++
	if progress != nil && total > 0 {
		progress(float64(d.processed) / float64(total))
	}
}
