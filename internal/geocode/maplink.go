// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"fmt"
	"strconv"
	"strings"
)

// LinkFormat selects the map service used for map links.
type LinkFormat string

const (
	LinkNone   LinkFormat = ""
	LinkGoogle LinkFormat = "google"
	LinkOSM    LinkFormat = "osm"
)

// ParseLinkFormat returns the LinkFormat for the given name.
func ParseLinkFormat(name string) (LinkFormat, error) {
	switch format := LinkFormat(strings.ToLower(strings.TrimSpace(name))); format {
	case LinkNone, LinkGoogle, LinkOSM:
		return format, nil
	default:
		return LinkNone, fmt.Errorf("unsupported map link format: %s", name)
	}
}

// MapLink formats a link to the given coordinates. The coordinates are used as they are,
// without rounding.
func (f LinkFormat) MapLink(lat, lon float64) string {
	latStr := strconv.FormatFloat(lat, 'f', -1, 64)
	lonStr := strconv.FormatFloat(lon, 'f', -1, 64)

	switch f {
	case LinkGoogle:
		return "https://www.google.com/maps?q=" + latStr + "," + lonStr
	case LinkOSM:
		return "https://www.openstreetmap.org/?mlat=" + latStr + "&mlon=" + lonStr + "#map=17/" +
			latStr + "/" + lonStr
	default:
		return ""
	}
}
