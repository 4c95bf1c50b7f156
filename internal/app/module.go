package app

import "github.com/gin-gonic/gin"

// Module is a self-registering feature module. api is mounted at /api/v1 and
// pages at /.
type Module interface {
	RegisterRoutes(api *gin.RouterGroup, pages *gin.RouterGroup)
}
