// Package controllers handles HTTP request handling
package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/SaSee1722/leavex/internal/app/models"
	"github.com/SaSee1722/leavex/internal/app/workflow"
	"github.com/SaSee1722/leavex/internal/middleware"
)

// actorFromContext builds the acting identity from the claims the auth
// middleware stored on the request context.
func actorFromContext(ctx *gin.Context) workflow.Actor {
	return workflow.Actor{
		ID:     ctx.GetString(middleware.ContextUserID),
		Role:   models.Role(ctx.GetString(middleware.ContextRole)),
		Stream: models.Stream(ctx.GetString(middleware.ContextStream)),
	}
}
