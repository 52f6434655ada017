// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package pipeline

import (
	"log/slog"

	"github.com/wneessen/geocsv/internal/geocode"
)

// Summary counts the outcomes of a run.
type Summary struct {
	Rows          int `json:"rows"`
	Resolved      int `json:"resolved"`
	NotFound      int `json:"not_found"`
	Timeouts      int `json:"timeouts"`
	ServiceErrors int `json:"service_errors"`
	UnknownErrors int `json:"unknown_errors"`
}

// Summarize counts the outcomes of the given results.
func Summarize(results []geocode.Result) Summary {
	summary := Summary{Rows: len(results)}
	for _, result := range results {
		switch result.Outcome.Status {
		case geocode.StatusResolved:
			summary.Resolved++
		case geocode.StatusNotFound:
			summary.NotFound++
		case geocode.StatusFailed:
			switch result.Outcome.Kind {
			case geocode.FailureTimeout:
				summary.Timeouts++
			case geocode.FailureService:
				summary.ServiceErrors++
			default:
				summary.UnknownErrors++
			}
		}
	}
	return summary
}

// Failed returns the number of rows whose lookup failed.
func (s Summary) Failed() int {
	return s.Timeouts + s.ServiceErrors + s.UnknownErrors
}

// LogValue implements slog.LogValuer.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("rows", s.Rows),
		slog.Int("resolved", s.Resolved),
		slog.Int("not_found", s.NotFound),
		slog.Int("timeouts", s.Timeouts),
		slog.Int("service_errors", s.ServiceErrors),
		slog.Int("unknown_errors", s.UnknownErrors),
	)
}
