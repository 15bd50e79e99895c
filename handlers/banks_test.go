package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/services"
	"github.com/pr-poehali-dev/sistem-integ-website-sub000/testhelpers"
)

func TestHandleBankCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := newJSONRequest(t, http.MethodPost, "/api/admin/banks", map[string]string{
		"bic":    "044525225",
		"name":   "ПАО СберБанк",
		"city":   "Москва",
		"source": "api",
	})
	rec := httptest.NewRecorder()
	if err := HandleBankCreate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	bank := services.FindBankByBIC(app, "044525225")
	if bank == nil {
		t.Fatal("bank not created")
	}
	// A client-sent source is ignored — manual creation is always manual.
	if bank.GetString("source") != services.BankSourceManual {
		t.Errorf("source = %q, want manual", bank.GetString("source"))
	}
}

func TestHandleBankCreate_DuplicateBIC(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestBank(t, app, "044525225", "СберБанк", services.BankSourceManual)

	req := newJSONRequest(t, http.MethodPost, "/api/admin/banks", map[string]string{
		"bic":  "044525225",
		"name": "Другой банк",
	})
	rec := httptest.NewRecorder()
	if err := HandleBankCreate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestHandleBankUpdate_DirectoryRowForbidden(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	bank := testhelpers.CreateTestBank(t, app, "044525974", "Тинькофф Банк", services.BankSourceAPI)

	req := newJSONRequest(t, http.MethodPatch, "/api/admin/banks/"+bank.Id, map[string]string{
		"name": "Новое имя",
	})
	req.SetPathValue("id", bank.Id)
	rec := httptest.NewRecorder()
	if err := HandleBankUpdate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}

	unchanged, _ := app.FindRecordById("banks", bank.Id)
	if unchanged.GetString("name") != "Тинькофф Банк" {
		t.Error("directory bank was modified")
	}
}

func TestHandleBankDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	manual := testhelpers.CreateTestBank(t, app, "044525111", "ВТБ", services.BankSourceManual)
	imported := testhelpers.CreateTestBank(t, app, "044525222", "Альфа-Банк", services.BankSourceAPI)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/banks/"+imported.Id, nil)
	req.SetPathValue("id", imported.Id)
	rec := httptest.NewRecorder()
	if err := HandleBankDelete(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("directory delete status = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/banks/"+manual.Id, nil)
	req.SetPathValue("id", manual.Id)
	rec = httptest.NewRecorder()
	if err := HandleBankDelete(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("manual delete status = %d, want 200", rec.Code)
	}
}

func TestHandleBankList_Search(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestBank(t, app, "044525225", "СберБанк", services.BankSourceManual)
	testhelpers.CreateTestBank(t, app, "044525974", "Тинькофф Банк", services.BankSourceAPI)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/banks?q=Сбер", nil)
	rec := httptest.NewRecorder()
	if err := HandleBankList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var banks []map[string]any
	decodeJSON(t, rec, &banks)
	if len(banks) != 1 {
		t.Fatalf("got %d banks, want 1", len(banks))
	}
	if banks[0]["name"] != "СберБанк" {
		t.Errorf("bank = %v", banks[0]["name"])
	}
}
