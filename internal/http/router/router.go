package router

import (
	"github.com/gin-gonic/gin"

	"github.com/proposalgenie/backend/internal/config"
	"github.com/proposalgenie/backend/internal/http/handlers"
	"github.com/proposalgenie/backend/internal/http/middleware"
	"github.com/proposalgenie/backend/internal/service"
)

// SetupRouter собирает все маршруты приложения.
func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	templateHandler *handlers.TemplateHandler,
	knowledgeBaseHandler *handlers.KnowledgeBaseHandler,
	proposalHandler *handlers.ProposalHandler,
	sectionHandler *handlers.SectionHandler,
	collaboratorHandler *handlers.CollaboratorHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	// Публичные auth маршруты под rate limit.
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	protectedAuth := api.Group("/auth")
	protectedAuth.Use(middleware.AuthMiddleware(tokenManager))
	{
		protectedAuth.GET("/profile", profileHandler.GetMe)
		protectedAuth.PUT("/profile", profileHandler.UpdateMe)
	}

	// Защищённые маршруты доменных сущностей.
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.POST("/templates", templateHandler.CreateTemplate)
		protected.GET("/templates", templateHandler.ListTemplates)
		protected.GET("/templates/:id", middleware.UUIDValidator("id"), templateHandler.GetTemplate)
		protected.PUT("/templates/:id", middleware.UUIDValidator("id"), templateHandler.UpdateTemplate)
		protected.DELETE("/templates/:id", middleware.UUIDValidator("id"), templateHandler.DeleteTemplate)

		protected.POST("/knowledge-base", knowledgeBaseHandler.CreateEntry)
		protected.GET("/knowledge-base", knowledgeBaseHandler.ListEntries)
		protected.GET("/knowledge-base/:id", middleware.UUIDValidator("id"), knowledgeBaseHandler.GetEntry)
		protected.PUT("/knowledge-base/:id", middleware.UUIDValidator("id"), knowledgeBaseHandler.UpdateEntry)
		protected.DELETE("/knowledge-base/:id", middleware.UUIDValidator("id"), knowledgeBaseHandler.DeleteEntry)

		protected.POST("/proposals", proposalHandler.CreateProposal)
		protected.GET("/proposals", proposalHandler.ListProposals)
		protected.GET("/proposals/:id", middleware.UUIDValidator("id"), proposalHandler.GetProposal)
		protected.PUT("/proposals/:id", middleware.UUIDValidator("id"), proposalHandler.UpdateProposal)
		protected.DELETE("/proposals/:id", middleware.UUIDValidator("id"), proposalHandler.DeleteProposal)

		protected.POST("/proposals/:id/sections", middleware.UUIDValidator("id"), sectionHandler.CreateSection)
		protected.GET("/proposals/:id/sections", middleware.UUIDValidator("id"), sectionHandler.ListSections)
		protected.PUT("/sections/:id", middleware.UUIDValidator("id"), sectionHandler.UpdateSection)
		protected.DELETE("/sections/:id", middleware.UUIDValidator("id"), sectionHandler.DeleteSection)

		protected.POST("/proposals/:id/collaborators", middleware.UUIDValidator("id"), collaboratorHandler.AddCollaborator)
		protected.GET("/proposals/:id/collaborators", middleware.UUIDValidator("id"), collaboratorHandler.ListCollaborators)
		protected.PUT("/collaborators/:id", middleware.UUIDValidator("id"), collaboratorHandler.UpdateCollaborator)
		protected.DELETE("/collaborators/:id", middleware.UUIDValidator("id"), collaboratorHandler.RemoveCollaborator)
	}

	return r
}
