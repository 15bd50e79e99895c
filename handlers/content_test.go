package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/testhelpers"
)

func TestHandleContentSetAndGet(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	body := bytes.NewBufferString(`{"name":"СистемаКрафт","slogan":"Инженерные системы под ключ"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/admin/content/company", body)
	req.SetPathValue("key", "company")
	rec := httptest.NewRecorder()
	if err := HandleContentSet(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("set status = %d, body %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/content/company", nil)
	req.SetPathValue("key", "company")
	rec = httptest.NewRecorder()
	if err := HandleContentGet(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("get: %v", err)
	}

	var resp struct {
		Key   string          `json:"key"`
		Value json.RawMessage `json:"value"`
	}
	decodeJSON(t, rec, &resp)
	var value map[string]string
	if err := json.Unmarshal(resp.Value, &value); err != nil {
		t.Fatalf("value: %v", err)
	}
	if value["name"] != "СистемаКрафт" {
		t.Errorf("name = %q", value["name"])
	}
}

func TestHandleContentSet_InvalidJSON(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/content/company", bytes.NewBufferString("{broken"))
	req.SetPathValue("key", "company")
	rec := httptest.NewRecorder()
	if err := HandleContentSet(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleContentSet_UnknownSection(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/content/secrets", bytes.NewBufferString("{}"))
	req.SetPathValue("key", "secrets")
	rec := httptest.NewRecorder()
	if err := HandleContentSet(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleContentGetAll_MissingSectionsAreNull(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/content", nil)
	rec := httptest.NewRecorder()
	if err := HandleContentGetAll(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]json.RawMessage
	decodeJSON(t, rec, &resp)
	raw, ok := resp["company"]
	if !ok {
		t.Fatal("company section missing from payload")
	}
	if string(raw) != "null" {
		t.Errorf("empty section = %s, want null", raw)
	}
}
