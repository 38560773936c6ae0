// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecoverer(t *testing.T) {
	panics := []struct {
		name  string
		value any
		want  string // substring of the logged panic value
	}{
		{"string", "something went wrong", "something went wrong"},
		{"integer", 42, "42"},
		{"error", errors.New("nil map write"), "nil map write"},
	}

	for _, tt := range panics {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.value)
			}))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/posts?id=1", nil))

			if rr.Code != http.StatusInternalServerError {
				t.Errorf("status: got %d, want 500", rr.Code)
			}
			if body := rr.Body.String(); !strings.Contains(body, `"error":"Internal server error"`) {
				t.Errorf("body: got %q", body)
			}
			if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("content type: got %q", ct)
			}

			entry := lastLogLine(t, buf)
			if entry["msg"] != "panic recovered" || entry["path"] != "/posts" || entry["method"] != "PUT" {
				t.Errorf("unexpected log entry: %v", entry)
			}
			if got := fmt.Sprint(entry["panic"]); !strings.Contains(got, tt.want) {
				t.Errorf("panic value: got %v, want it to contain %q", entry["panic"], tt.want)
			}
			if stack, _ := entry["stack"].(string); !strings.Contains(stack, "goroutine") {
				t.Error("stack trace missing from log")
			}
		})
	}
}

func TestRecovererRepanicsAbortHandler(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Errorf("expected ErrAbortHandler to propagate, got %v", rec)
		}
	}()

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestRecovererPassThrough(t *testing.T) {
	buf := captureLogs(t)

	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Custom", "test-value")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("ok"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/categories", nil))

	if rr.Code != http.StatusCreated || rr.Body.String() != "ok" {
		t.Errorf("got %d %q", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("X-Custom"); got != "test-value" {
		t.Errorf("X-Custom: got %q", got)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be logged, got %s", buf.String())
	}
}
