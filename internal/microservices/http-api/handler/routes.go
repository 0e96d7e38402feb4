package handler

import (
	"reviewhub/internal/authz"
	"reviewhub/internal/microservices/http-api/middleware"

	"github.com/gin-gonic/gin"
)

// Guards carries the access middleware handed to each RegisterRoutes.
type Guards struct {
	Authenticate gin.HandlerFunc
	Perms        authz.Authorizer
}

// Require chains authentication with a policy check.
func (g Guards) Require(object, action string) []gin.HandlerFunc {
	return []gin.HandlerFunc{g.Authenticate, middleware.RequirePermission(g.Perms, object, action)}
}

func with(guards []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(guards)+1)
	out = append(out, guards...)
	return append(out, h)
}
