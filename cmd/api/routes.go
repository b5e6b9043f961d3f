package main

import (
	"intake-platform/internal/httpapi"
	"intake-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authMW gin.HandlerFunc) {
	// public
	r.GET("/healthz", h.Healthz)

	// The intake endpoint is public: callers are rate limited per phone
	// number inside the orchestrator, not authenticated.
	r.POST("/call", h.HandleCall)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/login", h.Login)

		// operator API
		protected := v1.Group("")
		protected.Use(authMW)
		{
			protected.GET("/leads",
				rbac.RequireAnyRole(rbac.RoleAgent, rbac.RoleAdmin), h.ListLeads)

			protected.GET("/reports/leads",
				rbac.RequireAnyRole(rbac.RoleAdmin), h.LeadsReport)
		}
	}
}
