// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"
	"net"

	"github.com/wneessen/geocsv/internal/http"
)

const (
	// SentinelNotFound is the cell value for rows without a known address.
	SentinelNotFound = "Address not found"
	// SentinelFailed prefixes the cell value for rows whose lookup failed.
	SentinelFailed = "Error fetching address"
)

// Status tells which variant of an Outcome holds.
type Status int

const (
	StatusNotFound Status = iota
	StatusResolved
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusResolved:
		return "resolved"
	case StatusFailed:
		return "failed"
	default:
		return "not found"
	}
}

// FailureKind classifies a failed lookup.
type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailureTimeout
	FailureService
)

func (k FailureKind) String() string {
	switch k {
	case FailureTimeout:
		return "timeout"
	case FailureService:
		return "service error"
	default:
		return "unknown"
	}
}

// Outcome is the result of resolving a single coordinate. Address is only set for
// StatusResolved, Kind and Detail only for StatusFailed.
type Outcome struct {
	Status  Status
	Address string
	Kind    FailureKind
	Detail  string
}

// Resolved returns a successful Outcome.
func Resolved(address string) Outcome {
	return Outcome{Status: StatusResolved, Address: address}
}

// NotFound returns an Outcome for coordinates without an address.
func NotFound() Outcome {
	return Outcome{Status: StatusNotFound}
}

// Failed returns an Outcome for a failed lookup. detail is informational only.
func Failed(kind FailureKind, detail string) Outcome {
	return Outcome{Status: StatusFailed, Kind: kind, Detail: detail}
}

// Cell renders the Outcome as the value of the address column.
func (o Outcome) Cell() string {
	switch o.Status {
	case StatusResolved:
		return o.Address
	case StatusFailed:
		return SentinelFailed + " (" + o.Kind.String() + ")"
	default:
		return SentinelNotFound
	}
}

// Classify maps an error returned by a Geocoder to a FailureKind. It only looks at the
// error chain itself.
func Classify(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}

	var statusErr *http.StatusError
	if errors.Is(err, ErrServiceFailure) || errors.As(err, &statusErr) {
		return FailureService
	}
	return FailureUnknown
}
