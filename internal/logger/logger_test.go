// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level   slog.Level
		logged  []string
		skipped []string
	}{
		{slog.LevelDebug, []string{"msg=debug", "msg=info", "msg=warn", "msg=error"}, nil},
		{slog.LevelInfo, []string{"msg=info", "msg=warn", "msg=error"}, []string{"msg=debug"}},
		{slog.LevelWarn, []string{"msg=warn", "msg=error"}, []string{"msg=debug", "msg=info"}},
		{slog.LevelError, []string{"msg=error"}, []string{"msg=debug", "msg=info", "msg=warn"}},
	}
	for _, tc := range tests {
		t.Run(tc.level.String(), func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			l := NewLogger(tc.level, buf)
			l.Debug("debug")
			l.Info("info")
			l.Warn("warn")
			l.Error("error")

			for _, want := range tc.logged {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("expected %q to be logged, got: %q", want, buf.String())
				}
			}
			for _, skip := range tc.skipped {
				if strings.Contains(buf.String(), skip) {
					t.Errorf("did not expect %q to be logged", skip)
				}
			}
		})
	}
}

func TestErr(t *testing.T) {
	t.Run("error attributes should be logged", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		l := NewLogger(slog.LevelDebug, buf)
		want := "intentionally failing"
		l.Error("this is a test", Err(errors.New(want)))

		if !strings.Contains(buf.String(), `error="`+want+`"`) {
			t.Errorf("expected log line to contain %q, got: %q", want, buf.String())
		}
	})
}
