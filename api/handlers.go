package api

import (
	"github.com/adarsh14103/portfolio-backend/database"
	"github.com/adarsh14103/portfolio-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, sender services.EmailSender, contactRecipient string) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(database.ProjectRepo()),
		skillHandler:   newSkillHandler(database.SkillRepo()),
		profileHandler: newProfileHandler(database.ProfileRepo()),
		contactHandler: newContactHandler(sender, contactRecipient),
	}
}
