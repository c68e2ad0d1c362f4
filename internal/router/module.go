package router

import "github.com/gin-gonic/gin"

// Module is one aggregate's slice of the HTTP API. Each module registers its
// own routes and middleware on the shared /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
