// Package admin drives the content-management flows: a passkey gate in
// front of in-memory copies of the three collections, one edit buffer
// per entity type, and an image-attachment step that must complete
// before an entity is submitted. Mutations are never optimistic; every
// submit refetches from the server, and a failed call leaves local
// state exactly as it was.
package admin

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/adarsh14103/portfolio-backend/client"
	"github.com/adarsh14103/portfolio-backend/models"
	"github.com/adarsh14103/portfolio-backend/services"
)

// EntityState is where an entity type's edit flow currently stands.
type EntityState int

const (
	StateIdle EntityState = iota
	StateEditing
	StatePending
)

var (
	ErrLocked        = errors.New("admin session is locked")
	ErrWrongPasskey  = errors.New("incorrect passkey")
	ErrNoActiveEdit  = errors.New("no entity is being edited")
	ErrUnknownEntity = errors.New("unknown entity in collection")
)

// Controller holds the admin session's working state. It is meant to be
// driven from a single goroutine, mirroring the one admin user the
// system is designed for.
type Controller struct {
	api      *client.Client
	uploader services.ImageUploader
	session  *Session
	passkey  string
	logger   zerolog.Logger

	Projects []*models.Project
	Skills   []*models.Skill

	projectState  EntityState
	skillState    EntityState
	ProjectBuffer *models.Project
	SkillBuffer   *models.Skill

	// The profile is always edit-in-place, so its buffer doubles as
	// the fetched copy.
	ProfileBuffer models.Profile
}

func NewController(api *client.Client, uploader services.ImageUploader, session *Session, passkey string) *Controller {
	return &Controller{
		api:      api,
		uploader: uploader,
		session:  session,
		passkey:  passkey,
		logger:   log.With().Str("component", "adminController").Logger(),
	}
}

// Unlock compares the supplied passkey against the configured value. A
// wrong passkey leaves the session locked and performs no fetch; the
// right one opens the session and loads all three collections at once.
func (c *Controller) Unlock(ctx context.Context, passkey string) error {
	if subtle.ConstantTimeCompare([]byte(passkey), []byte(c.passkey)) != 1 {
		return ErrWrongPasskey
	}

	if err := c.session.Open(); err != nil {
		c.logger.Warn().Err(err).Msg("could not persist admin session")
	}

	return c.Load(ctx)
}

// Restore re-opens the session from its persisted token, fetching data
// only when the token still verifies.
func (c *Controller) Restore(ctx context.Context) error {
	if !c.session.Restore() {
		return ErrLocked
	}
	return c.Load(ctx)
}

// Logout tears the session down and drops everything held in memory.
func (c *Controller) Logout() {
	c.session.Close()
	c.Projects = nil
	c.Skills = nil
	c.ProjectBuffer = nil
	c.SkillBuffer = nil
	c.ProfileBuffer = models.Profile{}
	c.projectState = StateIdle
	c.skillState = StateIdle
}

// Load fetches the three collections in parallel. Any failure aborts
// the load and locks the session again, matching the dashboard's
// logout-on-fetch-error behavior.
func (c *Controller) Load(ctx context.Context) error {
	if !c.session.Authenticated() {
		return ErrLocked
	}

	var (
		projects []*models.Project
		skills   []*models.Skill
		profile  *models.Profile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = c.api.FetchProjects(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		skills, err = c.api.FetchSkills(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = c.api.FetchProfile(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		c.logger.Error().Err(err).Msg("initial data fetch failed")
		c.Logout()
		return err
	}

	c.Projects = projects
	c.Skills = skills
	if profile != nil {
		c.ProfileBuffer = *profile
	}
	return nil
}

// ProjectState reports where the project edit flow stands.
func (c *Controller) ProjectState() EntityState { return c.projectState }

// SkillState reports where the skill edit flow stands.
func (c *Controller) SkillState() EntityState { return c.skillState }

// NewProjectDraft starts an empty project form, silently discarding any
// unsaved edit.
func (c *Controller) NewProjectDraft() {
	c.ProjectBuffer = &models.Project{}
	c.projectState = StateEditing
}

// BeginProjectEdit loads a copy of an existing project into the form
// buffer, silently discarding any unsaved edit.
func (c *Controller) BeginProjectEdit(id uuid.UUID) error {
	for _, p := range c.Projects {
		if p.ID == id {
			buffer := *p
			c.ProjectBuffer = &buffer
			c.projectState = StateEditing
			return nil
		}
	}
	return ErrUnknownEntity
}

// SubmitProject sends the buffered project to the server (create for a
// fresh draft, full update otherwise) and refetches the list. On error
// the buffer and list are left unchanged.
func (c *Controller) SubmitProject(ctx context.Context) error {
	if c.ProjectBuffer == nil {
		return ErrNoActiveEdit
	}

	c.projectState = StatePending
	var err error
	if c.ProjectBuffer.ID == uuid.Nil {
		_, err = c.api.AddProject(ctx, *c.ProjectBuffer)
	} else {
		_, err = c.api.UpdateProject(ctx, *c.ProjectBuffer)
	}
	if err != nil {
		c.logger.Error().Err(err).Msg("project submit failed")
		c.projectState = StateEditing
		return err
	}

	c.ProjectBuffer = nil
	c.projectState = StateIdle
	return c.refetchProjects(ctx)
}

// DeleteProject removes a project and refetches the list.
func (c *Controller) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if err := c.api.DeleteProject(ctx, id); err != nil {
		c.logger.Error().Err(err).Msg("project delete failed")
		return err
	}
	return c.refetchProjects(ctx)
}

func (c *Controller) refetchProjects(ctx context.Context) error {
	projects, err := c.api.FetchProjects(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("project refetch failed")
		return err
	}
	c.Projects = projects
	return nil
}

// NewSkillDraft starts an empty skill form, silently discarding any
// unsaved edit.
func (c *Controller) NewSkillDraft() {
	c.SkillBuffer = &models.Skill{}
	c.skillState = StateEditing
}

// BeginSkillEdit loads a copy of an existing skill into the form
// buffer, silently discarding any unsaved edit.
func (c *Controller) BeginSkillEdit(id uuid.UUID) error {
	for _, s := range c.Skills {
		if s.ID == id {
			buffer := *s
			c.SkillBuffer = &buffer
			c.skillState = StateEditing
			return nil
		}
	}
	return ErrUnknownEntity
}

// SubmitSkill sends the buffered skill to the server and refetches the
// list. On error the buffer and list are left unchanged.
func (c *Controller) SubmitSkill(ctx context.Context) error {
	if c.SkillBuffer == nil {
		return ErrNoActiveEdit
	}

	c.skillState = StatePending
	var err error
	if c.SkillBuffer.ID == uuid.Nil {
		_, err = c.api.AddSkill(ctx, *c.SkillBuffer)
	} else {
		_, err = c.api.UpdateSkill(ctx, *c.SkillBuffer)
	}
	if err != nil {
		c.logger.Error().Err(err).Msg("skill submit failed")
		c.skillState = StateEditing
		return err
	}

	c.SkillBuffer = nil
	c.skillState = StateIdle
	return c.refetchSkills(ctx)
}

// DeleteSkill removes a skill and refetches the list.
func (c *Controller) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	if err := c.api.DeleteSkill(ctx, id); err != nil {
		c.logger.Error().Err(err).Msg("skill delete failed")
		return err
	}
	return c.refetchSkills(ctx)
}

func (c *Controller) refetchSkills(ctx context.Context) error {
	skills, err := c.api.FetchSkills(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("skill refetch failed")
		return err
	}
	c.Skills = skills
	return nil
}

// SubmitProfile upserts the edited profile and keeps the server's copy
// in the buffer.
func (c *Controller) SubmitProfile(ctx context.Context) error {
	updated, err := c.api.UpdateProfile(ctx, c.ProfileBuffer)
	if err != nil {
		c.logger.Error().Err(err).Msg("profile submit failed")
		return err
	}
	c.ProfileBuffer = *updated
	return nil
}
