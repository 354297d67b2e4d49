package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"devpal/backend/internal/middleware"
	"devpal/backend/internal/models"
)

func newConfigTestRouter() *chi.Mux {
	handler := NewConfigHandler(&mockPromptManager{}, zap.NewNop())
	router := chi.NewRouter()
	router.With(middleware.ValidateRequest[*models.ConfigTestRequest]()).Post("/test", handler.TestHandler)
	return router
}

func TestConfigTestSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-probe" {
			t.Errorf("credential not forwarded: %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"connection test successful"}}]}`))
	}))
	defer upstream.Close()

	router := newConfigTestRouter()
	body := `{"provider":"openai","api_key":"sk-probe","model":"gpt-4o-mini","base_url":"` + upstream.URL + `"}`
	rec := performRequest(router, http.MethodPost, "/test", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.ConfigTestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success: %+v", resp)
	}
	if resp.Provider != "openai" || resp.Model != "gpt-4o-mini" {
		t.Fatalf("echoed config wrong: %+v", resp)
	}
	if resp.ResponseTimeMS == nil {
		t.Fatal("response time must be measured")
	}
}

func TestConfigTestBadCredentials(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer upstream.Close()

	router := newConfigTestRouter()
	body := `{"provider":"deepseek","api_key":"bad","model":"deepseek-coder","base_url":"` + upstream.URL + `"}`
	rec := performRequest(router, http.MethodPost, "/test", body)
	// the test endpoint reports failure in the body, not the status
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp models.ConfigTestResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Success {
		t.Fatal("bad credentials must not report success")
	}
	if resp.Message != "API key is invalid or unauthorized" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestConfigTestUnreachableHost(t *testing.T) {
	router := newConfigTestRouter()
	body := `{"provider":"openai","api_key":"sk-x","model":"gpt-4o-mini","base_url":"http://127.0.0.1:1"}`
	rec := performRequest(router, http.MethodPost, "/test", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp models.ConfigTestResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Success {
		t.Fatal("unreachable host must not report success")
	}
}

func TestConfigTestValidation(t *testing.T) {
	router := newConfigTestRouter()

	rec := performRequest(router, http.MethodPost, "/test", `{"provider":"openai","model":"gpt-4o-mini"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a missing API key, got %d", rec.Code)
	}

	var resp models.ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Code != "missing_api_key" {
		t.Fatalf("expected missing_api_key, got %s", resp.Code)
	}
}
