// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package geocode resolves coordinates to addresses using a reverse geocoding provider
// and classifies the result of every lookup.
package geocode

import (
	"context"
	"errors"

	"github.com/wneessen/geocsv/internal/vartype"
)

// ErrServiceFailure is wrapped by providers when the remote API reports an error of its own,
// like an invalid API key or an exhausted quota.
var ErrServiceFailure = errors.New("geocoding service failure")

// Address is the provider-independent result of a reverse lookup. AddressFound is false
// if the provider answered but did not know an address for the coordinates.
type Address struct {
	AddressFound bool
	Latitude     float64
	Longitude    float64
	DisplayName  string
	Country      string
	State        string
	Municipality string
	CityDistrict string
	Postcode     string
	City         string
	Suburb       string
	Street       string
	HouseNumber  string
}

// Geocoder is implemented by the reverse geocoding providers.
type Geocoder interface {
	Name() string
	Reverse(ctx context.Context, lat, lon float64) (Address, error)
}

// Coordinate is a latitude/longitude pair in degrees. Either component may be missing.
type Coordinate struct {
	Lat vartype.VarFloat64
	Lon vartype.VarFloat64
}

// NewCoordinate returns a Coordinate with both components set.
func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{Lat: vartype.NewVariable(lat), Lon: vartype.NewVariable(lon)}
}

// Missing reports whether the latitude or the longitude is missing.
func (c Coordinate) Missing() bool {
	return !c.Lat.IsSet() || !c.Lon.IsSet()
}
