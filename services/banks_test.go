package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/testhelpers"
)

func TestUpdateBank_ManualSucceeds(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	bank := testhelpers.CreateTestBank(t, app, "044525225", "СберБанк", BankSourceManual)

	if !UpdateBank(app, bank.Id, map[string]any{"name": "ПАО СберБанк", "city": "Москва"}) {
		t.Fatal("UpdateBank() = false for a manual bank")
	}

	updated, err := app.FindRecordById("banks", bank.Id)
	if err != nil {
		t.Fatalf("reload bank: %v", err)
	}
	if updated.GetString("name") != "ПАО СберБанк" || updated.GetString("city") != "Москва" {
		t.Errorf("fields not applied: name=%q city=%q",
			updated.GetString("name"), updated.GetString("city"))
	}
}

func TestUpdateBank_DirectoryRowIsImmutable(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	bank := testhelpers.CreateTestBank(t, app, "044525974", "Тинькофф Банк", BankSourceAPI)

	if UpdateBank(app, bank.Id, map[string]any{"name": "Другое имя"}) {
		t.Fatal("UpdateBank() = true for a directory bank")
	}

	unchanged, err := app.FindRecordById("banks", bank.Id)
	if err != nil {
		t.Fatalf("reload bank: %v", err)
	}
	if unchanged.GetString("name") != "Тинькофф Банк" {
		t.Errorf("directory bank was modified: %q", unchanged.GetString("name"))
	}
}

func TestUpdateBank_SourceFieldIsIgnored(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	bank := testhelpers.CreateTestBank(t, app, "044030653", "Банк Санкт-Петербург", BankSourceManual)

	if !UpdateBank(app, bank.Id, map[string]any{"source": BankSourceAPI, "city": "СПб"}) {
		t.Fatal("UpdateBank() = false")
	}

	updated, _ := app.FindRecordById("banks", bank.Id)
	if updated.GetString("source") != BankSourceManual {
		t.Errorf("source changed to %q, must stay manual", updated.GetString("source"))
	}
}

func TestDeleteBank(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	manual := testhelpers.CreateTestBank(t, app, "044525111", "ВТБ", BankSourceManual)
	imported := testhelpers.CreateTestBank(t, app, "044525222", "Альфа-Банк", BankSourceAPI)

	if DeleteBank(app, imported.Id) {
		t.Error("DeleteBank() = true for a directory bank")
	}
	if _, err := app.FindRecordById("banks", imported.Id); err != nil {
		t.Error("directory bank was deleted")
	}

	if !DeleteBank(app, manual.Id) {
		t.Error("DeleteBank() = false for a manual bank")
	}
	if _, err := app.FindRecordById("banks", manual.Id); err == nil {
		t.Error("manual bank still exists after delete")
	}

	if DeleteBank(app, "missing_id_000") {
		t.Error("DeleteBank() = true for unknown id")
	}
}

func TestFindBankByBIC(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestBank(t, app, "044525225", "СберБанк", BankSourceManual)

	if bank := FindBankByBIC(app, "044525225"); bank == nil {
		t.Error("FindBankByBIC() = nil for existing BIC")
	}
	if bank := FindBankByBIC(app, "000000000"); bank != nil {
		t.Error("FindBankByBIC() found a bank for unknown BIC")
	}
}

func TestBankDirectoryStale(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if !BankDirectoryStale(app) {
		t.Error("empty directory must be stale")
	}

	testhelpers.CreateTestBank(t, app, "044525225", "СберБанк", BankSourceAPI)
	if BankDirectoryStale(app) {
		t.Error("freshly written directory row must be fresh")
	}

	// Manual rows do not count towards directory freshness.
	app2 := testhelpers.NewTestApp(t)
	testhelpers.CreateTestBank(t, app2, "044525333", "Ручной банк", BankSourceManual)
	if !BankDirectoryStale(app2) {
		t.Error("manual rows must not make the directory fresh")
	}
}

func TestSyncBankDirectory(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	manual := testhelpers.CreateTestBank(t, app, "044525999", "Ручной банк", BankSourceManual)
	stale := testhelpers.CreateTestBank(t, app, "040000001", "Старый импорт", BankSourceAPI)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleDirectoryXML))
	}))
	defer srv.Close()

	count, err := SyncBankDirectory(context.Background(), app, srv.Client(), srv.URL, true)
	if err != nil {
		t.Fatalf("SyncBankDirectory: %v", err)
	}
	if count != 2 {
		t.Fatalf("imported %d banks, want 2", count)
	}

	if _, err := app.FindRecordById("banks", manual.Id); err != nil {
		t.Error("manual bank removed by sync")
	}
	if _, err := app.FindRecordById("banks", stale.Id); err == nil {
		t.Error("previous directory rows must be replaced")
	}
	if bank := FindBankByBIC(app, "044525225"); bank == nil || bank.GetString("source") != BankSourceAPI {
		t.Error("synced bank missing or not api-sourced")
	}

	// A fresh directory short-circuits without force.
	count, err = SyncBankDirectory(context.Background(), app, srv.Client(), srv.URL, false)
	if err != nil {
		t.Fatalf("SyncBankDirectory (fresh): %v", err)
	}
	if count != 0 {
		t.Errorf("fresh directory re-synced %d rows, want 0", count)
	}
}
