package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleUserList returns the panel users.
func HandleUserList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("users", "id != ''", "name", 0, 0, nil)
		if err != nil {
			log.Printf("user_list: could not query users: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not load users")
		}
		return respondRecords(e, records)
	}
}

// HandleUserCreate registers a new panel user.
func HandleUserCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Name     string `json:"name"`
			Role     string `json:"role"`
			IsActive *bool  `json:"isActive"`
		}
		if err := e.BindBody(&req); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || len(req.Password) < 8 {
			return respondError(e, http.StatusBadRequest, "Email and a password of at least 8 characters are required")
		}
		if req.Role != "admin" && req.Role != "editor" {
			return respondError(e, http.StatusBadRequest, "Role must be admin or editor")
		}
		if existing, _ := app.FindAuthRecordByEmail("users", req.Email); existing != nil {
			return respondError(e, http.StatusConflict, "A user with this email already exists")
		}

		col, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			log.Printf("user_create: could not find users collection: %v\n", err)
			return respondError(e, http.StatusInternalServerError, "Could not create user")
		}

		record := core.NewRecord(col)
		record.SetEmail(req.Email)
		record.SetVerified(true)
		record.SetPassword(req.Password)
		record.Set("name", strings.TrimSpace(req.Name))
		record.Set("role", req.Role)
		active := true
		if req.IsActive != nil {
			active = *req.IsActive
		}
		record.Set("is_active", active)

		if err := app.Save(record); err != nil {
			log.Printf("user_create: could not save user: %v\n", err)
			return respondError(e, http.StatusBadRequest, "Could not save user")
		}
		return respondRecord(e, http.StatusCreated, record)
	}
}

// HandleUserUpdate edits a panel user's name, role or activity flag. An
// admin cannot deactivate or demote themselves, so the panel always keeps
// at least one working admin.
func HandleUserUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("users", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "User not found")
		}

		var req struct {
			Name     *string `json:"name"`
			Role     *string `json:"role"`
			IsActive *bool   `json:"isActive"`
			Password *string `json:"password"`
		}
		if err := e.BindBody(&req); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}

		self := AuthUser(e)
		isSelf := self != nil && self.Id == record.Id
		if isSelf && req.IsActive != nil && !*req.IsActive {
			return respondError(e, http.StatusBadRequest, "You cannot deactivate your own account")
		}
		if isSelf && req.Role != nil && *req.Role != "admin" {
			return respondError(e, http.StatusBadRequest, "You cannot demote your own account")
		}

		if req.Name != nil {
			record.Set("name", strings.TrimSpace(*req.Name))
		}
		if req.Role != nil {
			if *req.Role != "admin" && *req.Role != "editor" {
				return respondError(e, http.StatusBadRequest, "Role must be admin or editor")
			}
			record.Set("role", *req.Role)
		}
		if req.IsActive != nil {
			record.Set("is_active", *req.IsActive)
		}
		if req.Password != nil {
			if len(*req.Password) < 8 {
				return respondError(e, http.StatusBadRequest, "Password must be at least 8 characters")
			}
			record.SetPassword(*req.Password)
		}

		if err := app.Save(record); err != nil {
			log.Printf("user_update: could not save user %s: %v\n", record.Id, err)
			return respondError(e, http.StatusBadRequest, "Could not save user")
		}
		return respondRecord(e, http.StatusOK, record)
	}
}

// HandleUserDelete removes a panel user. Self-deletion is refused.
func HandleUserDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("users", e.Request.PathValue("id"))
		if err != nil {
			return respondError(e, http.StatusNotFound, "User not found")
		}
		if self := AuthUser(e); self != nil && self.Id == record.Id {
			return respondError(e, http.StatusBadRequest, "You cannot delete your own account")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("user_delete: could not delete user %s: %v\n", record.Id, err)
			return respondError(e, http.StatusInternalServerError, "Could not delete user")
		}
		return e.JSON(http.StatusOK, map[string]any{"status": "ok"})
	}
}
