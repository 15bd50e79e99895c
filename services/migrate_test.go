package services

import (
	"testing"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/testhelpers"
)

func TestMigrateLegacyEstimateItems(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// A pre-migration document: no kind discriminators, stale total.
	legacy := testhelpers.CreateTestEstimate(t, app, "СМ-2024-001", "Старая смета", []map[string]any{
		{"id": "1", "name": "Розетка", "quantity": 3, "price": 150},
		{"id": "2", "materialId": "m1", "materialName": "Кабель", "works": []map[string]any{
			{"id": "w1", "workName": "Прокладка", "quantity": 10, "pricePerUnit": 20},
		}},
	})
	legacy.Set("total_cost", 999)
	if err := app.Save(legacy); err != nil {
		t.Fatalf("save legacy estimate: %v", err)
	}

	if err := MigrateLegacyEstimateItems(app); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	reloaded, err := app.FindRecordById("estimates", legacy.Id)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	items, err := DecodeItems(reloaded)
	if err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Kind != LineKindSimple {
		t.Errorf("flat row kind = %q", items[0].Kind)
	}
	if items[1].Kind != LineKindMaterial {
		t.Errorf("material row kind = %q", items[1].Kind)
	}

	// 3*150 + 10*20 = 650
	if got := reloaded.GetFloat("total_cost"); got != 650 {
		t.Errorf("total = %v, want 650", got)
	}
}

func TestMigrateLegacyEstimateItems_TaggedLeftAlone(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	price := 150.0
	record := testhelpers.CreateTestEstimate(t, app, "СМ-2026-001", "Смета", []LineItem{
		{ID: "1", Kind: LineKindSimple, Name: "Розетка", Quantity: 3, Price: &price},
	})
	updated := record.GetDateTime("updated").String()

	if err := MigrateLegacyEstimateItems(app); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	reloaded, _ := app.FindRecordById("estimates", record.Id)
	if reloaded.GetDateTime("updated").String() != updated {
		t.Error("already-tagged estimate was rewritten")
	}
}

func TestMigrateLegacyEstimateItems_EmptyItems(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestEstimate(t, app, "СМ-2026-001", "Пустая", nil)

	if err := MigrateLegacyEstimateItems(app); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}
