package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/adarsh14103/portfolio-backend/database"
	"github.com/adarsh14103/portfolio-backend/errs"
	"github.com/adarsh14103/portfolio-backend/models"
)

type profileHandler struct {
	responder   Responder
	logger      zerolog.Logger
	profileRepo *database.ProfileRepo
}

func newProfileHandler(profileRepo *database.ProfileRepo) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		profileRepo: profileRepo,
	}
}

// getProfile returns the singleton profile row, or JSON null if it was
// never written.
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.profileRepo.Get()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}

		h.responder.WriteJSON(w, profile)
	}
}

// upsertProfile overwrites the singleton profile row, creating it on the
// first write. Registered for both PUT and PATCH; the two verbs behave
// identically.
func (h profileHandler) upsertProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var profile models.Profile
		if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode profile request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := validateRequiredText("tagline", profile.Tagline); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateRequiredText("bio", profile.Bio); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateEmailField("email", profile.Email); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		for field, value := range map[string]string{
			"image":    profile.Image,
			"resume":   profile.Resume,
			"github":   profile.Github,
			"linkedin": profile.Linkedin,
		} {
			if err := validateURLField(field, value); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		if err := h.profileRepo.Upsert(&profile); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("upsert", "profile", err))
			return
		}

		h.responder.WriteJSON(w, profile)
	}
}
