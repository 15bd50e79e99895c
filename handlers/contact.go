package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/services"
)

// HandleContactSubmit accepts a public contact-form submission and mails it
// to the address from the contact content section. When no recipient is
// configured the visitor gets the phone number to call instead.
func HandleContactSubmit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req services.ContactRequest
		if err := e.BindBody(&req); err != nil {
			return respondError(e, http.StatusBadRequest, "Invalid request body")
		}
		if err := req.Validate(); err != nil {
			return respondValidation(e, err)
		}

		contact := services.LoadContactSection(app)
		if contact.Email == "" {
			log.Printf("contact: no recipient configured, submission from %s dropped\n", req.Phone)
			return e.JSON(http.StatusOK, map[string]any{
				"status": "fallback",
				"phone":  contact.Phone,
			})
		}

		if err := services.SendContactMail(app, contact.Email, req); err != nil {
			log.Printf("contact: could not send mail: %v\n", err)
			return e.JSON(http.StatusOK, map[string]any{
				"status": "fallback",
				"phone":  contact.Phone,
			})
		}
		return e.JSON(http.StatusOK, map[string]any{"status": "ok"})
	}
}
