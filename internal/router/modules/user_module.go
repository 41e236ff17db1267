package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/estate-listing-api/internal/interface/http"
)

// UserModule serves the caller's profile and the admin user directory.
type UserModule struct {
	Handler *handlers.UserHandler
	Guard   Guard
}

func NewUserModule(h *handlers.UserHandler, g Guard) *UserModule {
	return &UserModule{Handler: h, Guard: g}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.authed(rg)
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.POST("/profile/avatar", m.Handler.UploadAvatar)
	}

	admin := m.Guard.admin(rg)
	{
		admin.GET("/users", m.Handler.List)
		admin.GET("/users/search", m.Handler.Search)
		admin.PATCH("/users/:id/role", m.Handler.ChangeRole)
		admin.PATCH("/users/:id/status", m.Handler.ChangeStatus)
		admin.DELETE("/users/:id", m.Handler.Delete)
	}
}
