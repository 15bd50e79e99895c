package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/services"
)

// HandleAccessList returns the access grants of a project.
func HandleAccessList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		records, err := app.FindRecordsByFilter("project_access", "project = {:project}", "-granted_at", 0, 0,
			map[string]any{"project": projectID})
		if err != nil {
			log.Printf("access_list: could not query access: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not load access grants")
		}
		return respondRecords(e, records)
	}
}

// HandleAccessGrant gives a user access to a project. An existing grant for
// the same user is updated in place instead of duplicated.
func HandleAccessGrant(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return respondError(e, http.StatusNotFound, "Project not found")
		}

		var req struct {
			User        string `json:"user"`
			AccessLevel string `json:"accessLevel"`
		}
		if err := e.BindBody(&req); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}
		if req.User == "" {
			return respondError(e, http.StatusBadRequest, "User is required")
		}
		if !validAccessLevel(req.AccessLevel) {
			return respondError(e, http.StatusBadRequest, "Unknown access level")
		}
		if _, err := app.FindRecordById("users", req.User); err != nil {
			return respondError(e, http.StatusNotFound, "User not found")
		}

		existing, _ := app.FindRecordsByFilter("project_access",
			"project = {:project} && user = {:user}", "", 1, 0,
			map[string]any{"project": projectID, "user": req.User})

		var record *core.Record
		if len(existing) > 0 {
			record = existing[0]
		} else {
			col, err := app.FindCollectionByNameOrId("project_access")
			if err != nil {
				log.Printf("access_grant: could not find project_access collection: %v\n", err)
				return respondError(e, http.StatusInternalServerError, "Could not grant access")
			}
			record = core.NewRecord(col)
			record.Set("project", projectID)
			record.Set("user", req.User)
		}

		record.Set("access_level", req.AccessLevel)
		if granter := AuthUser(e); granter != nil {
			record.Set("granted_by", granter.Id)
		}

		if err := app.Save(record); err != nil {
			log.Printf("access_grant: could not save grant: %v\n", err)
			return respondError(e, http.StatusBadRequest, "Could not grant access")
		}
		return respondRecord(e, http.StatusOK, record)
	}
}

// HandleAccessRevoke removes an access grant.
func HandleAccessRevoke(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("project_access", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "Access grant not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("access_revoke: could not delete grant %s: %v\n", record.Id, err)
			return respondError(e, http.StatusInternalServerError, "Could not revoke access")
		}
		return e.JSON(http.StatusOK, map[string]any{"status": "ok"})
	}
}

func validAccessLevel(level string) bool {
	for _, l := range services.AccessLevels {
		if l == level {
			return true
		}
	}
	return false
}
