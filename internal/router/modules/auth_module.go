package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/estate-listing-api/internal/interface/http"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Guard   Guard
}

func NewAuthModule(h *handlers.AuthHandler, g Guard) *AuthModule {
	return &AuthModule{Handler: h, Guard: g}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	g := m.Guard
	rg.POST("/auth/register", g.perIP(10), m.Handler.Register)
	rg.POST("/auth/login", g.perIP(10), m.Handler.Login)
	rg.POST("/auth/refresh", g.perIP(60), m.Handler.Refresh)
	rg.POST("/auth/verify/confirm", g.perIP(30), m.Handler.VerifyConfirm)
	rg.POST("/auth/reset/init", g.perIP(5), m.Handler.ResetInit)
	rg.POST("/auth/reset/confirm", g.perIP(30), m.Handler.ResetConfirm)

	auth := rg.Group("/", g.Auth)
	{
		auth.POST("/auth/logout", m.Handler.Logout)
		auth.POST("/auth/verify/init", g.perUser(5), m.Handler.VerifyInit)
	}
}
