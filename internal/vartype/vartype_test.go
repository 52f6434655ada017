// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package vartype

import "testing"

func TestNewVariable(t *testing.T) {
	v := NewVariable(6.5244)
	if !v.IsSet() {
		t.Fatal("expected variable to be set")
	}
	if v.Value() != 6.5244 {
		t.Errorf("expected value 6.5244, got %f", v.Value())
	}
	var missing VarFloat64
	if missing.IsSet() {
		t.Error("expected zero variable to be unset")
	}
}

func TestParseFloat64(t *testing.T) {
	tests := []struct {
		raw     string
		wantSet bool
		want    float64
	}{
		{"6.5244", true, 6.5244},
		{"  3.3792 ", true, 3.3792},
		{"-0.5", true, -0.5},
		{"1e2", true, 100},
		{"bad", false, 0},
		{"", false, 0},
		{"NaN", false, 0},
		{"inf", false, 0},
		{"-Infinity", false, 0},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			v := ParseFloat64(tc.raw)
			if v.IsSet() != tc.wantSet {
				t.Fatalf("expected set to be %t, got %t", tc.wantSet, v.IsSet())
			}
			if v.Value() != tc.want {
				t.Errorf("expected value %f, got %f", tc.want, v.Value())
			}
		})
	}
}

func TestVariable_String(t *testing.T) {
	tests := []struct {
		name string
		v    VarFloat64
		want string
	}{
		{"missing value", VarFloat64{}, ""},
		{"short float", NewVariable(6.5244), "6.5244"},
		{"integer float", NewVariable(3.0), "3"},
		{"negative float", NewVariable(-122.419416), "-122.419416"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.String(); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
	t.Run("non-float values", func(t *testing.T) {
		v := NewVariable(42)
		if v.String() != "42" {
			t.Errorf("expected %q, got %q", "42", v.String())
		}
	})
}
