// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestUser creates an active admin-panel user and returns it.
func CreateTestUser(t *testing.T, app *pocketbase.PocketBase, email, password, role string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		t.Fatalf("failed to find users collection: %v", err)
	}

	record := core.NewRecord(col)
	record.SetEmail(email)
	record.SetVerified(true)
	record.SetPassword(password)
	record.Set("name", "Test User")
	record.Set("role", role)
	record.Set("is_active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test user: %v", err)
	}

	return record
}

// CreateTestProject creates a project record with the given title and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("title", title)
	record.Set("status", "active")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestEstimate creates an estimate record with raw items and returns it.
func CreateTestEstimate(t *testing.T, app *pocketbase.PocketBase, number, name string, items any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		t.Fatalf("failed to find estimates collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("number", number)
	record.Set("name", name)
	if items != nil {
		record.Set("items", items)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test estimate: %v", err)
	}

	return record
}

// CreateTestUnit creates a measurement unit record and returns it.
func CreateTestUnit(t *testing.T, app *pocketbase.PocketBase, name, fullName, category string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("units")
	if err != nil {
		t.Fatalf("failed to find units collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("full_name", fullName)
	record.Set("category", category)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test unit: %v", err)
	}

	return record
}

// CreateTestMaterial creates a material catalog record and returns it.
func CreateTestMaterial(t *testing.T, app *pocketbase.PocketBase, code, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		t.Fatalf("failed to find materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("type", "material")
	record.Set("code", code)
	record.Set("name", name)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

// CreateTestWork creates a work catalog record and returns it.
func CreateTestWork(t *testing.T, app *pocketbase.PocketBase, code, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("works")
	if err != nil {
		t.Fatalf("failed to find works collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("code", code)
	record.Set("name", name)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test work: %v", err)
	}

	return record
}

// CreateTestBank creates a bank record with the given source and returns it.
func CreateTestBank(t *testing.T, app *pocketbase.PocketBase, bic, name, source string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("banks")
	if err != nil {
		t.Fatalf("failed to find banks collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("bic", bic)
	record.Set("name", name)
	record.Set("source", source)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test bank: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
