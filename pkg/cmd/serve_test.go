/*
Copyright 2025 David Arnold
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
    http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gitlab.com/davidxarnold/costglance/pkg/core"
)

type stubResolver struct {
	attrs core.AttributeSet
	err   error
}

func (s *stubResolver) Resolve(_ context.Context, _ string) (core.AttributeSet, error) {
	return s.attrs, s.err
}

func TestHealthz(t *testing.T) {
	srv := newServer(":0", &stubResolver{attrs: sampleAttributes()}, "i-abc123")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /healthz, got %d", rec.Code)
	}
}

func TestAttributesHandler(t *testing.T) {
	handler := attributesHandler(&stubResolver{attrs: sampleAttributes()}, "i-abc123")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if decoded[core.KeyInstanceID] != "i-abc123" {
		t.Errorf("unexpected instance id: %v", decoded[core.KeyInstanceID])
	}
}

func TestAttributesHandlerResolutionFailure(t *testing.T) {
	handler := attributesHandler(&stubResolver{err: errors.New("throttled")}, "i-abc123")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 on resolution failure, got %d", rec.Code)
	}
}
