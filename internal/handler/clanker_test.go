package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func deployEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	// Client is nil on purpose: every request in these tests must be
	// rejected locally, before any upstream call.
	h := &ClankerHandler{Logger: zap.NewNop()}
	h.Register(engine)
	return engine
}

func postDeploy(t *testing.T, engine *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/clanker/deploy", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

const validKey = "abcdefghijklmnopqrstuvwxyz012345"

func TestDeployValidationRejectsBeforeUpstream(t *testing.T) {
	engine := deployEngine(t)

	valid := map[string]any{
		"name":             "Demo",
		"symbol":           "DMO",
		"image":            "https://cdn.example/demo.png",
		"requestorAddress": "0x23fc5f7179d8aaf18d3f8a85175160c33fc7cbc7",
		"requestKey":       validKey,
	}
	tests := []struct {
		name    string
		mutate  func(m map[string]any)
		wantMsg string
	}{
		{"missing name", func(m map[string]any) { delete(m, "name") }, "Missing required field: name"},
		{"missing symbol", func(m map[string]any) { delete(m, "symbol") }, "Missing required field: symbol"},
		{"missing image", func(m map[string]any) { delete(m, "image") }, "Missing required field: image"},
		{"missing address", func(m map[string]any) { delete(m, "requestorAddress") }, "Missing required field: requestorAddress"},
		{"missing key", func(m map[string]any) { delete(m, "requestKey") }, "Missing required field: requestKey"},
		{"short key", func(m map[string]any) { m["requestKey"] = "short" }, "Request key must be exactly 32 characters long"},
		{"bad address", func(m map[string]any) { m["requestorAddress"] = "0x1234" }, "Invalid Ethereum address format"},
	}
	for _, tt := range tests {
		body := map[string]any{}
		for k, v := range valid {
			body[k] = v
		}
		tt.mutate(body)
		raw, _ := json.Marshal(body)

		rec := postDeploy(t, engine, string(raw))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", tt.name, rec.Code)
		}
		var resp map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: bad JSON: %v", tt.name, err)
		}
		if resp["error"] != tt.wantMsg {
			t.Fatalf("%s: error = %q, want %q", tt.name, resp["error"], tt.wantMsg)
		}
	}
}

func TestDeployRejectsInvalidJSON(t *testing.T) {
	engine := deployEngine(t)
	rec := postDeploy(t, engine, "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDeployedByAddressValidation(t *testing.T) {
	engine := deployEngine(t)

	tests := []struct {
		name    string
		query   string
		wantMsg string
	}{
		{"missing", "", "Address parameter is required"},
		{"invalid", "?address=nope", "Invalid Ethereum address format"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/clanker/deployed-by-address"+tt.query, nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", tt.name, rec.Code)
		}
		var resp map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: bad JSON: %v", tt.name, err)
		}
		if resp["error"] != tt.wantMsg {
			t.Fatalf("%s: error = %q, want %q", tt.name, resp["error"], tt.wantMsg)
		}
	}
}
