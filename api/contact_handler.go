package api

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/adarsh14103/portfolio-backend/errs"
	"github.com/adarsh14103/portfolio-backend/services"
)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	sender    services.EmailSender
	recipient string
}

func newContactHandler(sender services.EmailSender, recipient string) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		sender:    sender,
		recipient: recipient,
	}
}

// ContactRequest is a visitor's contact-form submission
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// submitContact validates the submission and relays it to the site
// owner's inbox. Validation runs before any email is sent.
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var contact ContactRequest
		if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := validateRequiredText("name", contact.Name); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateRequiredText("message", contact.Message); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateRequiredText("email", contact.Email); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateEmailField("email", contact.Email); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		subject := fmt.Sprintf("Contact Form Submission from %s", contact.Name)
		body := contactEmailBody(contact)

		if err := h.sender.SendEmail(subject, body, []string{h.recipient}); err != nil {
			h.logger.Error().Err(err).Msg("Failed to relay contact form submission")
			h.responder.WriteError(w, errs.NewUpstreamError("email relay", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"message": "Message sent successfully!",
		})
	}
}

func contactEmailBody(contact ContactRequest) string {
	return fmt.Sprintf(`<html>
  <body>
    <h1>Contact Form Submission</h1>
    <p><strong>Name:</strong> %s</p>
    <p><strong>Email:</strong> %s</p>
    <p><strong>Message:</strong></p>
    <p>%s</p>
    <p>This is an automated message. Please do not reply directly to this email.</p>
  </body>
</html>`,
		html.EscapeString(contact.Name),
		html.EscapeString(contact.Email),
		html.EscapeString(contact.Message),
	)
}
