package router

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/estate-listing-api/internal/container"
	handlers "github.com/oksasatya/estate-listing-api/internal/interface/http"
	"github.com/oksasatya/estate-listing-api/internal/interface/middleware"
	"github.com/oksasatya/estate-listing-api/internal/metrics"
	"github.com/oksasatya/estate-listing-api/internal/router/modules"
)

func guard(c *container.Container) modules.Guard {
	g := modules.Guard{
		Auth:     middleware.Auth(c.Sessions, c.JWT),
		Optional: middleware.OptionalAuth(c.Sessions, c.JWT),
	}
	if c.Redis != nil {
		g.Limiter = c.Redis
	}
	return g
}

// InitModules builds the handlers from the container and registers every
// feature module under /api. /health and /metrics live on the root engine.
func InitModules(r *Registry, c *container.Container) {
	log := c.Logger
	g := guard(c)

	proposals := handlers.NewProposalHandler(c.Proposals, log)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(c.Auth, c.Cookies, log), g))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(c.Users, log), g))
	r.Add(modules.NewPropertyModule(handlers.NewPropertyHandler(c.Properties, log), proposals, g))
	r.Add(modules.NewListingModule(handlers.NewListingHandler(c.Listings, log), g))
	r.Add(modules.NewProposalModule(proposals, g))
	r.Add(modules.NewBookmarkModule(handlers.NewBookmarkHandler(c.Bookmarks, log), g))
	r.Add(modules.NewNotificationModule(
		handlers.NewNotificationHandler(c.Notifications, log),
		handlers.NewEmailHandler(c.Mail, log),
		g,
	))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}

	checks := make(map[string]handlers.Check, len(c.Checks))
	for name, fn := range c.Checks {
		checks[name] = handlers.Check(fn)
	}
	r.Engine.GET("/health", handlers.NewHealthHandler(checks).Health)
	if c.Config.MetricsEnabled {
		r.Engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
}
