package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/services"
	"github.com/pr-poehali-dev/sistem-integ-website-sub000/testhelpers"
)

func fptr(v float64) *float64 { return &v }

func TestHandleEstimateCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	services.RegisterEstimateHooks(app)

	req := newJSONRequest(t, http.MethodPost, "/api/admin/estimates", map[string]any{
		"name": "Монтаж СКС",
		"items": []map[string]any{
			{"name": "Розетка RJ-45", "quantity": 3, "price": 150},
			{"name": "Кабель-канал", "quantity": 10},
		},
	})
	rec := httptest.NewRecorder()

	if err := HandleEstimateCreate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	decodeJSON(t, rec, &resp)
	if resp["total_cost"].(float64) != 450 {
		t.Errorf("total_cost = %v, want 450 (unpriced line counts as zero)", resp["total_cost"])
	}
	// An omitted number comes from the yearly sequence.
	if number, _ := resp["number"].(string); number == "" {
		t.Error("number not generated")
	}
}

func TestHandleEstimateUpdate_RecomputesTotals(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	services.RegisterEstimateHooks(app)

	record := testhelpers.CreateTestEstimate(t, app, "СМ-2026-001", "Смета", []services.LineItem{
		{Name: "Розетка", Quantity: 3, Price: fptr(150)},
	})

	req := newJSONRequest(t, http.MethodPatch, "/api/admin/estimates/"+record.Id, map[string]any{
		"name": "Смета (обновлённая)",
		"items": []map[string]any{
			{"name": "Розетка", "quantity": 5, "price": 150},
		},
	})
	req.SetPathValue("id", record.Id)
	rec := httptest.NewRecorder()

	if err := HandleEstimateUpdate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	reloaded, _ := app.FindRecordById("estimates", record.Id)
	if got := reloaded.GetFloat("total_cost"); got != 750 {
		t.Errorf("total = %v, want 750", got)
	}
	if reloaded.GetString("number") != "СМ-2026-001" {
		t.Errorf("omitted number overwrote the stored one: %q", reloaded.GetString("number"))
	}
}

func TestHandleEstimateDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	record := testhelpers.CreateTestEstimate(t, app, "СМ-2026-001", "Смета", nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/estimates/"+record.Id, nil)
	req.SetPathValue("id", record.Id)
	rec := httptest.NewRecorder()

	if err := HandleEstimateDelete(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if _, err := app.FindRecordById("estimates", record.Id); err == nil {
		t.Error("estimate still exists")
	}
}

func TestHandleEstimateList_ProjectFilter(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Офис")

	linked := testhelpers.CreateTestEstimate(t, app, "СМ-2026-001", "Привязанная", nil)
	linked.Set("project", project.Id)
	if err := app.Save(linked); err != nil {
		t.Fatalf("save: %v", err)
	}
	testhelpers.CreateTestEstimate(t, app, "СМ-2026-002", "Свободная", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/estimates?project="+project.Id, nil)
	rec := httptest.NewRecorder()
	if err := HandleEstimateList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var records []map[string]any
	decodeJSON(t, rec, &records)
	if len(records) != 1 {
		t.Fatalf("got %d estimates, want 1", len(records))
	}
	if records[0]["number"] != "СМ-2026-001" {
		t.Errorf("estimate = %v", records[0]["number"])
	}
}

func TestHandleEstimateExport(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	services.RegisterEstimateHooks(app)
	record := testhelpers.CreateTestEstimate(t, app, "СМ-2026-001", "Смета", []services.LineItem{
		{Name: "Розетка", Quantity: 3, Price: fptr(150)},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/estimates/"+record.Id+"/export/excel", nil)
	req.SetPathValue("id", record.Id)
	rec := httptest.NewRecorder()

	if err := HandleEstimateExport(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type = %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty workbook")
	}
}

func TestHandleEstimateNextNumber(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/estimates/next-number", nil)
	rec := httptest.NewRecorder()
	if err := HandleEstimateNextNumber(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	decodeJSON(t, rec, &resp)
	if resp["number"] == "" {
		t.Error("no number in response")
	}
}
