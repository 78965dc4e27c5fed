package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/adarsh14103/portfolio-backend/database"
	"github.com/adarsh14103/portfolio-backend/errs"
	"github.com/adarsh14103/portfolio-backend/models"
)

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	skillRepo *database.SkillRepo
}

func newSkillHandler(skillRepo *database.SkillRepo) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger),
		logger:    logger,
		skillRepo: skillRepo,
	}
}

// SkillCollection wraps the skill list the way the public page consumes it
type SkillCollection struct {
	Skills []*models.Skill `json:"skills"`
}

func validateSkill(skill *models.Skill) error {
	if err := validateRequiredText("name", skill.Name); err != nil {
		return err
	}
	if skill.Image != nil {
		if err := validateURLField("image", *skill.Image); err != nil {
			return err
		}
	}
	return nil
}

// getAllSkills retrieves every skill row
func (h skillHandler) getAllSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.skillRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skills", err))
			return
		}

		if skills == nil {
			skills = []*models.Skill{}
		}

		h.responder.WriteJSON(w, SkillCollection{Skills: skills})
	}
}

// createSkill validates the payload and inserts a new skill row
func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var skill models.Skill
		if err := json.NewDecoder(r.Body).Decode(&skill); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode skill request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := validateSkill(&skill); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skill.ID = uuid.Nil

		if err := h.skillRepo.Add(&skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "skill", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, skill)
	}
}

// updateSkill replaces all fields of the row matching the body's id
func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var skill models.Skill
		if err := json.NewDecoder(r.Body).Decode(&skill); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode skill request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if skill.ID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("id"))
			return
		}

		if err := validateSkill(&skill); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.skillRepo.Update(&skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "skill", err))
			return
		}

		updated, err := h.skillRepo.FindByID(skill.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "skill", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteSkill removes the row matching the body's id
func (h skillHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			ID uuid.UUID `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if payload.ID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("id"))
			return
		}

		if err := h.skillRepo.Delete(payload.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "skill", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "skill deleted successfully",
		})
	}
}
