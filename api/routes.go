package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the resource routes under /api. Verbs and payload
// shapes follow the public site's contract: collection-level endpoints
// with the row id carried in the body for updates and deletes, and the
// singleton profile reachable at /api/adarsh.
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Route("/api", func(r chi.Router) {
			r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.Write([]byte(`{"status":"ok"}`))
			})

			r.Get("/projects", handlers.projectHandler.getAllProjects())
			r.Post("/projects", handlers.projectHandler.createProject())
			r.Put("/projects", handlers.projectHandler.updateProject())
			r.Delete("/projects", handlers.projectHandler.deleteProject())

			r.Get("/skills", handlers.skillHandler.getAllSkills())
			r.Post("/skills", handlers.skillHandler.createSkill())
			r.Put("/skills", handlers.skillHandler.updateSkill())
			r.Delete("/skills", handlers.skillHandler.deleteSkill())

			r.Get("/adarsh", handlers.profileHandler.getProfile())
			// PUT and PATCH hit the same upsert; the old clients
			// disagreed on the verb, so both are accepted.
			r.Put("/adarsh", handlers.profileHandler.upsertProfile())
			r.Patch("/adarsh", handlers.profileHandler.upsertProfile())

			r.Post("/contact", handlers.contactHandler.submitContact())
		})
	})
}
