package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/interface/middleware"
)

// Guard bundles the middleware modules put in front of their routes.
type Guard struct {
	Auth     gin.HandlerFunc
	Optional gin.HandlerFunc
	// Limiter backs the rate limits; nil disables them.
	Limiter redis.Scripter
}

func (g Guard) perIP(max int) gin.HandlerFunc {
	return middleware.RateLimit(g.Limiter, middleware.Limit{Max: max, Window: time.Minute, Key: middleware.KeyByIPAndPath()})
}

func (g Guard) perUser(max int) gin.HandlerFunc {
	return middleware.RateLimit(g.Limiter, middleware.Limit{Max: max, Window: time.Minute, Key: middleware.KeyByUserID()})
}

// authed returns a group behind Auth with the default per-user limit.
func (g Guard) authed(rg *gin.RouterGroup) *gin.RouterGroup {
	return rg.Group("/", g.Auth, g.perUser(120))
}

func (g Guard) admin(rg *gin.RouterGroup) *gin.RouterGroup {
	return rg.Group("/", g.Auth, middleware.RequireRole(entity.RoleAdmin), g.perUser(120))
}
