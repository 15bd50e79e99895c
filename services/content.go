package services

import (
	"encoding/json"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// ContentSections are the editable blocks of the public site, one record
// each in the site_content collection.
var ContentSections = []string{
	"company",
	"hero",
	"solutions",
	"advantages",
	"portfolio",
	"certificates",
	"contact",
	"seo",
}

// IsContentSection reports whether key names a known section.
func IsContentSection(key string) bool {
	for _, s := range ContentSections {
		if s == key {
			return true
		}
	}
	return false
}

// GetSection returns the stored JSON value of a section, or nil when the
// section was never written.
func GetSection(app core.App, key string) (json.RawMessage, error) {
	records, err := app.FindRecordsByFilter(
		"site_content",
		"key = {:key}",
		"", 1, 0,
		map[string]any{"key": key},
	)
	if err != nil {
		return nil, fmt.Errorf("load section %q: %w", key, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	raw := records[0].Get("value")
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []byte:
		return json.RawMessage(v), nil
	case string:
		return json.RawMessage(v), nil
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode section %q: %w", key, err)
		}
		return encoded, nil
	}
}

// SetSection replaces a section's value wholesale, creating the record on
// first write.
func SetSection(app core.App, key string, value json.RawMessage) error {
	if !IsContentSection(key) {
		return fmt.Errorf("unknown content section %q", key)
	}

	records, err := app.FindRecordsByFilter(
		"site_content",
		"key = {:key}",
		"", 1, 0,
		map[string]any{"key": key},
	)
	if err != nil {
		return fmt.Errorf("load section %q: %w", key, err)
	}

	var record *core.Record
	if len(records) > 0 {
		record = records[0]
	} else {
		collection, err := app.FindCollectionByNameOrId("site_content")
		if err != nil {
			return fmt.Errorf("site_content collection: %w", err)
		}
		record = core.NewRecord(collection)
		record.Set("key", key)
	}

	record.Set("value", value)
	if err := app.Save(record); err != nil {
		return fmt.Errorf("save section %q: %w", key, err)
	}
	return nil
}

// ContactSection is the typed shape of the "contact" block, used by the
// public page and as the contact-form recipient source.
type ContactSection struct {
	Title    string `json:"title"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Telegram string `json:"telegram"`
}

// LoadContactSection reads the contact block; missing data yields the zero
// value rather than an error so the public page always renders.
func LoadContactSection(app core.App) ContactSection {
	var section ContactSection
	raw, err := GetSection(app, "contact")
	if err != nil || raw == nil {
		return section
	}
	_ = json.Unmarshal(raw, &section)
	return section
}
