// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/wneessen/geocsv/internal/logger"
	"github.com/wneessen/geocsv/internal/testhelper"
)

type testType struct {
	String string  `json:"string"`
	Int    int     `json:"int"`
	Float  float64 `json:"float"`
	Bool   bool    `json:"bool"`
}

const testFile = "../../testdata/testtype.json"

func TestNew(t *testing.T) {
	client := New(logger.NewLogger(slog.LevelInfo, io.Discard))
	if client == nil {
		t.Fatal("expected client to be non-nil")
	}
	if client.Timeout != DefaultTimeout {
		t.Errorf("expected client timeout to be %s, got %s", DefaultTimeout, client.Timeout)
	}
}

func TestClient_Get(t *testing.T) {
	t.Run("getting and serializing JSON should work", func(t *testing.T) {
		var gotReq *stdhttp.Request
		fileFn := testhelper.FileResponse(t, testFile)
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			gotReq = req
			return fileFn(req)
		}

		client := New(logger.NewLogger(slog.LevelInfo, io.Discard))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}
		query := url.Values{}
		query.Add("key", "value")
		headers := map[string]string{"X-Custom-Header": "custom-value"}

		target := new(testType)
		code, err := client.Get(t.Context(), "https://example.com", target, query, headers)
		if err != nil {
			t.Fatalf("failed to get JSON response: %s", err)
		}
		if code != 200 {
			t.Errorf("expected status code 200, got %d", code)
		}
		if target.String != "test" || target.Int != 123 || target.Float != 123.456 || !target.Bool {
			t.Errorf("unexpected target after decoding: %+v", target)
		}
		if gotReq.URL.Query().Get("key") != "value" {
			t.Errorf("expected query parameter to be sent, got %q", gotReq.URL.RawQuery)
		}
		if gotReq.Header.Get("X-Custom-Header") != "custom-value" {
			t.Error("expected custom header to be sent")
		}
		if gotReq.Header.Get("User-Agent") != UserAgent {
			t.Errorf("expected user agent %q, got %q", UserAgent, gotReq.Header.Get("User-Agent"))
		}
	})
	t.Run("unmarshalling into non-pointer should fail", func(t *testing.T) {
		client := New(logger.NewLogger(slog.LevelInfo, io.Discard))
		var target testType
		_, err := client.Get(t.Context(), "https://example.com", target, nil, nil)
		if !errors.Is(err, ErrNonPointerTarget) {
			t.Errorf("expected error to be %s, got %s", ErrNonPointerTarget, err)
		}
	})
	t.Run("parsing an invalid url should fail", func(t *testing.T) {
		client := New(logger.NewLogger(slog.LevelInfo, io.Discard))
		target := new(testType)
		_, err := client.Get(t.Context(), "http://example.com/xyz%", target, nil, nil)
		if err == nil {
			t.Fatal("expected get to fail")
		}
		if !strings.Contains(err.Error(), "failed to parse URL") {
			t.Errorf("expected error to contain 'failed to parse URL', got %s", err)
		}
	})
	t.Run("get request fails", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return nil, errors.New("intentionally failing")
		}

		client := New(logger.NewLogger(slog.LevelInfo, io.Discard))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		_, err := client.Get(t.Context(), "https://example.com", target, nil, nil)
		if err == nil {
			t.Fatal("expected get request to fail")
		}
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			t.Error("transport failures must not be reported as status errors")
		}
	})
	t.Run("non-successful status code returns a status error", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.StringResponse(stdhttp.StatusTooManyRequests, `{"error":"rate limited"}`), nil
		}

		client := New(logger.NewLogger(slog.LevelInfo, io.Discard))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		code, err := client.Get(t.Context(), "https://example.com", target, nil, nil)
		if code != stdhttp.StatusTooManyRequests {
			t.Errorf("expected status code %d, got %d", stdhttp.StatusTooManyRequests, code)
		}
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("expected a status error, got %v", err)
		}
		if statusErr.StatusCode != stdhttp.StatusTooManyRequests {
			t.Errorf("expected status error code %d, got %d", stdhttp.StatusTooManyRequests, statusErr.StatusCode)
		}
		if !strings.Contains(statusErr.Error(), "rate limited") {
			t.Errorf("expected status error to contain the response body, got %q", statusErr.Error())
		}
	})
	t.Run("broken JSON fails to decode", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.StringResponse(stdhttp.StatusOK, `{"string":`), nil
		}

		client := New(logger.NewLogger(slog.LevelInfo, io.Discard))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		_, err := client.Get(t.Context(), "https://example.com", target, nil, nil)
		if err == nil || !strings.Contains(err.Error(), "failed to decode JSON") {
			t.Errorf("expected decode error, got %v", err)
		}
	})
	t.Run("a body that fails to close is logged", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return &stdhttp.Response{
				StatusCode: 200,
				Body:       &failReadCloser{},
				Header:     make(stdhttp.Header),
			}, nil
		}

		buf := strings.Builder{}
		client := New(logger.NewLogger(slog.LevelInfo, &buf))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		if _, err := client.Get(t.Context(), "https://example.com", target, nil, nil); err == nil {
			t.Fatal("expected get request to fail")
		}
		if !strings.Contains(buf.String(), "failed to close HTTP request body") {
			t.Errorf("expected close failure to be logged, got %q", buf.String())
		}
	})
}

func TestClient_GetWithTimeout(t *testing.T) {
	t.Run("get request fails on deadline", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			<-req.Context().Done()
			return nil, req.Context().Err()
		}

		client := New(logger.NewLogger(slog.LevelInfo, io.Discard))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		_, err := client.GetWithTimeout(t.Context(), "https://example.com", target, nil, nil, time.Millisecond)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected error to be %s, got %s", context.DeadlineExceeded, err)
		}
	})
	t.Run("online request succeeds", func(t *testing.T) {
		testhelper.PerformIntegrationTests(t)
		client := New(logger.NewLogger(slog.LevelInfo, io.Discard))
		target := make(map[string]any)
		if _, err := client.GetWithTimeout(t.Context(), testhelper.TestOnlineAPIURL, &target, nil, nil,
			time.Second*5); err != nil {
			t.Fatalf("expected get request to succeed, got %s", err)
		}
	})
}

type failReadCloser struct{}

func (failReadCloser) Read(p []byte) (int, error) { return len(p), nil }
func (failReadCloser) Close() error               { return errors.New("failed to close") }
