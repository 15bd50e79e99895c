// Package collections creates and seeds the application's PocketBase
// collections on startup.
package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures every collection the admin panel
// works with. Each collection mirrors one of the storage keys of the old
// browser-only admin (projects, catalogs, estimates, banks, content, ...).
func Setup(app *pocketbase.PocketBase) {
	persons := ensureCollection(app, "persons", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "first_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "last_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "middle_name"})
		c.Fields.Add(&core.TextField{Name: "position"})
		c.Fields.Add(&core.TextField{Name: "phone"})
		c.Fields.Add(&core.EmailField{Name: "email"})
		c.Fields.Add(&core.TextField{Name: "notes"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "banks", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "bic", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "correspondent_account"})
		c.Fields.Add(&core.TextField{Name: "city"})
		c.Fields.Add(&core.TextField{Name: "address"})
		c.Fields.Add(&core.TextField{Name: "phone"})
		c.Fields.Add(&core.SelectField{
			Name:      "source",
			Required:  true,
			Values:    []string{"api", "manual"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	units := ensureCollection(app, "units", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "code"})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "full_name"})
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Values:    []string{"weight", "length", "volume", "area", "time", "piece", "other"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "materials", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "type",
			Required:  true,
			Values:    []string{"material", "equipment"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "code"})
		c.Fields.Add(&core.TextField{Name: "article_number"})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.RelationField{
			Name:         "unit",
			CollectionId: units.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "price"})
		c.Fields.Add(&core.TextField{Name: "manufacturer"})
		c.Fields.Add(&core.TextField{Name: "notes"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "works", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "code"})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.RelationField{
			Name:         "unit",
			CollectionId: units.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "price_per_unit"})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"active", "pending", "completed", "cancelled"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.DateField{Name: "start_date"})
		c.Fields.Add(&core.DateField{Name: "end_date"})
		c.Fields.Add(&core.NumberField{Name: "budget"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "legal_entities", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "inn"})
		c.Fields.Add(&core.TextField{Name: "kpp"})
		c.Fields.Add(&core.TextField{Name: "ogrn"})
		c.Fields.Add(&core.TextField{Name: "legal_address"})
		c.Fields.Add(&core.TextField{Name: "actual_address"})
		c.Fields.Add(&core.TextField{Name: "director_name"})
		c.Fields.Add(&core.TextField{Name: "phone"})
		c.Fields.Add(&core.EmailField{Name: "email"})
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	usersCol, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		log.Fatalf("Failed to find users auth collection: %v", err)
	}
	ensureUserFields(app, usersCol)

	ensureCollection(app, "project_access", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "user",
			Required:      true,
			CollectionId:  usersCol.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "access_level",
			Required:  true,
			Values:    []string{"read", "write", "admin"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "granted_by",
			CollectionId: usersCol.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.AutodateField{Name: "granted_at", OnCreate: true})
	})

	ensureCollection(app, "systems", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.TextField{Name: "type"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"active", "inactive", "development", "maintenance"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "client_curator",
			CollectionId: persons.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "estimates", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "number", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		// Deleting a project keeps its estimates; the reference goes stale
		// and renders empty, same as any other broken catalog reference.
		c.Fields.Add(&core.RelationField{
			Name:         "project",
			CollectionId: projects.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.DateField{Name: "date"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Values:    []string{"draft", "sent", "approved", "rejected"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "notes"})
		c.Fields.Add(&core.JSONField{Name: "items", MaxSize: 2 << 20})
		c.Fields.Add(&core.NumberField{Name: "total_cost"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "site_content", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.JSONField{Name: "value", MaxSize: 2 << 20})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_site_content_key", true, "key", "")
	})

	ensureCollection(app, "images", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.FileField{
			Name:      "file",
			Required:  true,
			MaxSelect: 1,
			MaxSize:   10 << 20,
			MimeTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		})
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Required:  true,
			Values:    []string{"slider", "portfolio", "certificates", "other"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.JSONField{Name: "tags", MaxSize: 4096})
		c.Fields.Add(&core.NumberField{Name: "size"})
		c.Fields.Add(&core.NumberField{Name: "width"})
		c.Fields.Add(&core.NumberField{Name: "height"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "title_pages", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "document_title", Required: true})
		c.Fields.Add(&core.TextField{Name: "city"})
		c.Fields.Add(&core.TextField{Name: "address"})
		c.Fields.Add(&core.TextField{Name: "year"})
		c.Fields.Add(&core.TextField{Name: "approved_by"})
		c.Fields.Add(&core.TextField{Name: "approved_date"})
		c.Fields.Add(&core.TextField{Name: "developer_name"})
		c.Fields.Add(&core.TextField{Name: "developer_position"})
		c.Fields.Add(&core.TextField{Name: "chief_engineer_name"})
		c.Fields.Add(&core.TextField{Name: "chief_engineer_position"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "title_page_templates", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.TextField{Name: "document_title", Required: true})
		c.Fields.Add(&core.TextField{Name: "city"})
		c.Fields.Add(&core.TextField{Name: "year"})
		c.Fields.Add(&core.TextField{Name: "approved_by"})
		c.Fields.Add(&core.TextField{Name: "developer_position"})
		c.Fields.Add(&core.TextField{Name: "chief_engineer_position"})
		c.Fields.Add(&core.BoolField{Name: "is_default"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "calculator_settings", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "system_code", Required: true})
		c.Fields.Add(&core.TextField{Name: "system_name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "price_per_room"})
		c.Fields.Add(&core.NumberField{Name: "price_per_room_area"})
		c.Fields.Add(&core.NumberField{Name: "price_per_corridor_area"})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_calculator_system_code", true, "system_code", "")
	})
}

// ensureUserFields extends the builtin users auth collection with the
// admin-panel fields (role, activity flag).
func ensureUserFields(app *pocketbase.PocketBase, c *core.Collection) {
	changed := false

	if c.Fields.GetByName("name") == nil {
		c.Fields.Add(&core.TextField{Name: "name"})
		changed = true
	}
	if c.Fields.GetByName("role") == nil {
		c.Fields.Add(&core.SelectField{
			Name:      "role",
			Required:  true,
			Values:    []string{"admin", "editor"},
			MaxSelect: 1,
		})
		changed = true
	}
	if c.Fields.GetByName("is_active") == nil {
		c.Fields.Add(&core.BoolField{Name: "is_active"})
		changed = true
	}

	if changed {
		if err := app.Save(c); err != nil {
			log.Fatalf("Failed to extend users collection: %v", err)
		}
	}
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
