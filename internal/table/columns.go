// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package table

import (
	"fmt"
	"strings"

	"github.com/wneessen/geocsv/internal/geocode"
	"github.com/wneessen/geocsv/internal/vartype"
)

const (
	latitudeKey  = "latitude"
	longitudeKey = "longitude"
)

// Columns identifies the coordinate columns of a table by index and name.
type Columns struct {
	Latitude      int
	Longitude     int
	LatitudeName  string
	LongitudeName string
}

// ResolveColumns finds the latitude and longitude columns. A column matches if its trimmed,
// lower-cased name contains "latitude" or "longitude". The first match wins. A column that
// already holds the latitude role is not considered for the longitude.
func ResolveColumns(header []string) (Columns, error) {
	cols := Columns{Latitude: -1, Longitude: -1}
	for i, name := range header {
		folded := strings.ToLower(strings.TrimSpace(name))
		if cols.Latitude == -1 && strings.Contains(folded, latitudeKey) {
			cols.Latitude, cols.LatitudeName = i, name
		}
		if cols.Longitude == -1 && cols.Latitude != i && strings.Contains(folded, longitudeKey) {
			cols.Longitude, cols.LongitudeName = i, name
		}
	}

	switch {
	case cols.Latitude == -1 && cols.Longitude == -1:
		return cols, fmt.Errorf("%w: no latitude or longitude column found", ErrColumnsNotFound)
	case cols.Latitude == -1:
		return cols, fmt.Errorf("%w: no latitude column found", ErrColumnsNotFound)
	case cols.Longitude == -1:
		return cols, fmt.Errorf("%w: no longitude column found", ErrColumnsNotFound)
	}
	return cols, nil
}

// Normalize parses the coordinate cells of every row and rewrites them in their normalized
// textual form. Cells that are not numbers become missing values and are written as empty
// cells. Other cells are left untouched.
func (t *Table) Normalize(cols Columns) []geocode.Coordinate {
	coords := make([]geocode.Coordinate, len(t.Records))
	for i, record := range t.Records {
		coords[i] = geocode.Coordinate{
			Lat: vartype.ParseFloat64(record[cols.Latitude]),
			Lon: vartype.ParseFloat64(record[cols.Longitude]),
		}
		record[cols.Latitude] = coords[i].Lat.String()
		record[cols.Longitude] = coords[i].Lon.String()
	}
	return coords
}
