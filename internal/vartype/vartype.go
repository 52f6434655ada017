// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package vartype

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// VarFloat64 is a type alias for Variable[float64], representing a float64 value with initialization tracking.
type VarFloat64 = Variable[float64]

// Variable represents a generic type wrapper that holds a value and tracks its initialization state.
// An unset Variable marks a missing value.
type Variable[T any] struct {
	value T
	isset bool
}

// NewVariable creates and returns a new Variable instance initialized with the provided value.
func NewVariable[T any](value T) Variable[T] {
	return Variable[T]{
		isset: true,
		value: value,
	}
}

// ParseFloat64 parses a textual cell into a VarFloat64. Empty, unparsable, NaN and infinite
// values yield an unset variable.
func ParseFloat64(raw string) VarFloat64 {
	val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return VarFloat64{}
	}
	return NewVariable(val)
}

// Value retrieves the current value stored in the Variable.
func (v Variable[T]) Value() T {
	return v.value
}

// IsSet returns true if the Variable has been initialized with a value, otherwise false.
func (v Variable[T]) IsSet() bool {
	return v.isset
}

// String returns a string representation of the Variable. Missing values render as an
// empty string, floats use the shortest representation that round-trips.
func (v Variable[T]) String() string {
	if !v.isset {
		return ""
	}
	if f, ok := any(v.value).(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v.value)
}
