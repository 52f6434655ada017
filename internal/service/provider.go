// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"strings"

	"github.com/wneessen/geocsv/internal/config"
	"github.com/wneessen/geocsv/internal/geocode"
	geocodeearth "github.com/wneessen/geocsv/internal/geocode/provider/geocode-earth"
	"github.com/wneessen/geocsv/internal/geocode/provider/opencage"
	nominatim "github.com/wneessen/geocsv/internal/geocode/provider/osm-nominatim"
	"github.com/wneessen/geocsv/internal/http"
)

func selectGeocodeProvider(conf *config.Config, client *http.Client) (geocode.Geocoder, error) {
	var geocoder geocode.Geocoder

	switch strings.ToLower(conf.GeoCoder.Provider) {
	case "nominatim":
		geocoder = nominatim.New(client, conf.Language(), conf.GeoCoder.Endpoint)
	case "opencage":
		if conf.GeoCoder.APIKey == "" {
			return nil, fmt.Errorf("opencage geocoder requires an API key")
		}
		geocoder = opencage.New(client, conf.Language(), conf.GeoCoder.APIKey)
	case "geocode-earth":
		if conf.GeoCoder.APIKey == "" {
			return nil, fmt.Errorf("geocode-earth geocoder requires an API key")
		}
		geocoder = geocodeearth.New(client, conf.Language(), conf.GeoCoder.APIKey)
	default:
		return nil, fmt.Errorf("unsupported geocoder type: %s", conf.GeoCoder.Provider)
	}

	return geocoder, nil
}
