package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestFail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := Fail(c, http.StatusNotFound, CodeNotFound, "roadmap not found"); err != nil {
		t.Fatalf("Fail() unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if env.Error.Code != CodeNotFound || env.Error.Message != "roadmap not found" {
		t.Errorf("envelope = %+v", env)
	}
	if env.Error.Field != "" {
		t.Errorf("field should be empty, got %q", env.Error.Field)
	}
}

func TestFailField(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := FailField(c, http.StatusConflict, CodeDuplicate, "email already registered", "email"); err != nil {
		t.Fatalf("FailField() unexpected error: %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if env.Error.Field != "email" {
		t.Errorf("field = %q, want email", env.Error.Field)
	}
}
