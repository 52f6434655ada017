// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import "testing"

func TestParseLinkFormat(t *testing.T) {
	tests := []struct {
		name     string
		want     LinkFormat
		wantFail bool
	}{
		{"", LinkNone, false},
		{"google", LinkGoogle, false},
		{" OSM ", LinkOSM, false},
		{"bing", LinkNone, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLinkFormat(tc.name)
			if tc.wantFail && err == nil {
				t.Fatal("expected parsing to fail")
			}
			if !tc.wantFail && err != nil {
				t.Fatalf("failed to parse link format: %s", err)
			}
			if got != tc.want {
				t.Errorf("expected link format %q, got %q", tc.want, got)
			}
		})
	}
}

func TestLinkFormat_MapLink(t *testing.T) {
	tests := []struct {
		format LinkFormat
		lat    float64
		lon    float64
		want   string
	}{
		{LinkGoogle, 6.5244, 3.3792, "https://www.google.com/maps?q=6.5244,3.3792"},
		{LinkGoogle, 52.512912345678, -13.391, "https://www.google.com/maps?q=52.512912345678,-13.391"},
		{LinkOSM, 6.5244, 3.3792, "https://www.openstreetmap.org/?mlat=6.5244&mlon=3.3792#map=17/6.5244/3.3792"},
		{LinkNone, 6.5244, 3.3792, ""},
	}
	for _, tc := range tests {
		t.Run(string(tc.format), func(t *testing.T) {
			if got := tc.format.MapLink(tc.lat, tc.lon); got != tc.want {
				t.Errorf("expected map link %q, got %q", tc.want, got)
			}
		})
	}
}
