package api

import (
	"net/mail"
	"net/url"
	"strings"

	"github.com/adarsh14103/portfolio-backend/errs"
)

// validateURLField checks that value, when non-empty, parses as an
// absolute http(s) URL. Empty values are the caller's concern.
func validateURLField(field, value string) error {
	if value == "" {
		return nil
	}
	parsed, err := url.Parse(value)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return errs.NewInvalidFieldError(field, "must be an absolute http(s) URL")
	}
	return nil
}

func validateRequiredText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewMissingRequiredFieldError(field)
	}
	return nil
}

func validateEmailField(field, value string) error {
	if _, err := mail.ParseAddress(value); err != nil {
		return errs.NewInvalidFieldError(field, "must be a valid email address")
	}
	return nil
}
