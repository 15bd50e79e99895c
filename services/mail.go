package services

import (
	"fmt"
	"net/mail"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/mailer"
)

// ContactRequest is a public contact-form submission.
type ContactRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate checks the form fields before anything is sent.
func (r ContactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Phone, validation.Required, validation.Length(5, 50)),
		validation.Field(&r.Email, is.EmailFormat),
		validation.Field(&r.Message, validation.Required, validation.Length(1, 5000)),
	)
}

// SendContactMail delivers a contact-form submission to the company inbox.
func SendContactMail(app core.App, to string, req ContactRequest) error {
	message := &mailer.Message{
		From: mail.Address{
			Name:    app.Settings().Meta.SenderName,
			Address: app.Settings().Meta.SenderAddress,
		},
		To:      []mail.Address{{Address: to}},
		Subject: "Заявка с сайта: " + req.Name,
		HTML: fmt.Sprintf(
			"<p><b>Имя:</b> %s</p><p><b>Телефон:</b> %s</p><p><b>Email:</b> %s</p><p>%s</p>",
			req.Name, req.Phone, req.Email, req.Message,
		),
		Text: fmt.Sprintf("Имя: %s\nТелефон: %s\nEmail: %s\n\n%s",
			req.Name, req.Phone, req.Email, req.Message),
	}
	if err := app.NewMailClient().Send(message); err != nil {
		return fmt.Errorf("send contact mail: %w", err)
	}
	return nil
}

// SendPasswordResetMail emails a reset link to the user.
func SendPasswordResetMail(app core.App, user *core.Record, link string) error {
	message := &mailer.Message{
		From: mail.Address{
			Name:    app.Settings().Meta.SenderName,
			Address: app.Settings().Meta.SenderAddress,
		},
		To:      []mail.Address{{Address: user.Email()}},
		Subject: "Восстановление пароля",
		HTML: fmt.Sprintf(
			"<p>Для сброса пароля перейдите по ссылке:</p><p><a href=%q>%s</a></p><p>Ссылка действительна 1 час.</p>",
			link, link,
		),
		Text: fmt.Sprintf("Для сброса пароля перейдите по ссылке: %s\nСсылка действительна 1 час.", link),
	}
	if err := app.NewMailClient().Send(message); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}
