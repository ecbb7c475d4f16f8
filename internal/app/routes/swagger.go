package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupSwagger configures Swagger documentation routes. The document itself
// is generated from the controller annotations by the swag CLI.
func SetupSwagger(router *gin.Engine, options ...func(*ginSwagger.Config)) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, options...))
}
