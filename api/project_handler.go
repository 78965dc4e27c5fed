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

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// ProjectCollection wraps the project list the way the public page consumes it
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
}

func validateProject(project *models.Project) error {
	if err := validateRequiredText("name", project.Name); err != nil {
		return err
	}
	if err := validateURLField("image", project.Image); err != nil {
		return err
	}
	if err := validateURLField("github", project.Github); err != nil {
		return err
	}
	if project.URL != nil {
		if err := validateURLField("url", *project.URL); err != nil {
			return err
		}
	}
	return nil
}

// getAllProjects retrieves every project row
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		if projects == nil {
			projects = []*models.Project{}
		}

		h.responder.WriteJSON(w, ProjectCollection{Projects: projects})
	}
}

// createProject validates the payload and inserts a new project row
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var project models.Project
		if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := validateProject(&project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// The store owns identity and timestamps
		project.ID = uuid.Nil

		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject replaces all fields of the row matching the body's id
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var project models.Project
		if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if project.ID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("id"))
			return
		}

		if err := validateProject(&project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Update(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		updated, err := h.projectRepo.FindByID(project.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "project", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteProject removes the row matching the body's id
func (h projectHandler) deleteProject() http.HandlerFunc {
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

		if err := h.projectRepo.Delete(payload.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}
