// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"log/slog"

	"github.com/wneessen/geocsv/internal/logger"
)

// Result holds the Outcome for one coordinate and, if enabled, its map link.
type Result struct {
	Outcome Outcome
	MapLink string
}

// Resolver turns a Coordinate into a Result using a Geocoder.
type Resolver struct {
	coder  Geocoder
	links  LinkFormat
	logger *logger.Logger
}

func NewResolver(coder Geocoder, links LinkFormat, log *logger.Logger) *Resolver {
	return &Resolver{
		coder:  coder,
		links:  links,
		logger: log,
	}
}

// MapLinks reports whether the Resolver produces map links.
func (r *Resolver) MapLinks() bool {
	return r.links != LinkNone
}

// Resolve performs exactly one lookup for the coordinate. Coordinates with a missing
// component are NotFound and never reach the provider.
func (r *Resolver) Resolve(ctx context.Context, coords Coordinate) Result {
	if coords.Missing() {
		return Result{Outcome: NotFound()}
	}

	lat, lon := coords.Lat.Value(), coords.Lon.Value()
	result := Result{MapLink: r.links.MapLink(lat, lon)}

	addr, err := r.coder.Reverse(ctx, lat, lon)
	switch {
	case err != nil:
		kind := Classify(err)
		r.logger.Debug("reverse geocoding failed", logger.Err(err), slog.String("kind", kind.String()),
			slog.Float64("lat", lat), slog.Float64("lon", lon), slog.String("provider", r.coder.Name()))
		result.Outcome = Failed(kind, err.Error())
	case addr.AddressFound && addr.DisplayName != "":
		result.Outcome = Resolved(addr.DisplayName)
	default:
		result.Outcome = NotFound()
	}
	return result
}
