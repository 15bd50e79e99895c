package collections_test

import (
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/collections"
	"github.com/pr-poehali-dev/sistem-integ-website-sub000/testhelpers"
)

func TestSetup_CreatesAllCollections(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	names := []string{
		"persons", "units", "materials", "works", "banks",
		"projects", "legal_entities", "project_access", "systems",
		"estimates", "site_content", "images",
		"title_pages", "title_page_templates", "calculator_settings",
	}
	for _, name := range names {
		if _, err := app.FindCollectionByNameOrId(name); err != nil {
			t.Errorf("collection %q missing: %v", name, err)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Офис")

	// A second Setup run on an initialized database is a no-op.
	collections.Setup(app)

	if _, err := app.FindRecordById("projects", project.Id); err != nil {
		t.Errorf("existing record lost after repeated setup: %v", err)
	}
}

func TestSetup_SiteContentKeyUnique(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	col, err := app.FindCollectionByNameOrId("site_content")
	if err != nil {
		t.Fatalf("site_content: %v", err)
	}

	first := core.NewRecord(col)
	first.Set("key", "company")
	first.Set("value", map[string]any{"name": "СистемаКрафт"})
	if err := app.Save(first); err != nil {
		t.Fatalf("save first: %v", err)
	}

	duplicate := core.NewRecord(col)
	duplicate.Set("key", "company")
	duplicate.Set("value", map[string]any{"name": "Другая"})
	if err := app.Save(duplicate); err == nil {
		t.Error("duplicate section key saved, unique index not enforced")
	}
}
