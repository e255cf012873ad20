package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"trip-planner-service/internal/catalog"
	"trip-planner-service/internal/domain"
)

func getHealth(t *testing.T, cat *catalog.Catalog, method string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/health", nil)
	rec := httptest.NewRecorder()
	Health(cat)(rec, req)
	return rec
}

func TestHealthReportsDataset(t *testing.T) {
	cat := catalog.New(map[string][]*domain.POI{
		"xan": {fixturePOI("x1", "Granite Falls Ascent", domain.BucketFourToEightHours, []string{"lake"})},
	}, handlerVocab)

	rec := getHealth(t, cat, http.MethodGet)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res struct {
		Status string `json:"status"`
		Cities int    `json:"cities"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Status != "ok" || res.Cities != 1 {
		t.Fatalf("health = %+v, want ok with 1 city", res)
	}
}

func TestHealthFlagsEmptyDataset(t *testing.T) {
	cat := catalog.New(nil, handlerVocab)

	rec := getHealth(t, cat, http.MethodGet)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res struct {
		Status string `json:"status"`
		Cities int    `json:"cities"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Status != "empty dataset" || res.Cities != 0 {
		t.Fatalf("health = %+v, want an empty-dataset report", res)
	}
}

func TestHealthMethodNotAllowed(t *testing.T) {
	cat := catalog.New(nil, handlerVocab)

	rec := getHealth(t, cat, http.MethodPost)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodGet {
		t.Fatalf("Allow = %q, want GET", allow)
	}
}
