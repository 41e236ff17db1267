package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/estate-listing-api/internal/interface/http"
)

// NotificationModule covers device registration, the in-app inbox, and the
// admin send and email endpoints.
type NotificationModule struct {
	Handler *handlers.NotificationHandler
	Email   *handlers.EmailHandler
	Guard   Guard
}

func NewNotificationModule(h *handlers.NotificationHandler, email *handlers.EmailHandler, g Guard) *NotificationModule {
	return &NotificationModule{Handler: h, Email: email, Guard: g}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.authed(rg)
	{
		auth.POST("/devices", m.Handler.RegisterDevice)
		auth.DELETE("/devices", m.Handler.UnregisterDevice)
		auth.GET("/notifications", m.Handler.List)
		auth.GET("/notifications/unread-count", m.Handler.UnreadCount)
		auth.POST("/notifications/:id/read", m.Handler.MarkRead)
		auth.DELETE("/notifications/:id", m.Handler.Delete)
	}

	admin := m.Guard.admin(rg)
	{
		admin.POST("/notifications/send", m.Handler.Send)
		admin.POST("/email/send", m.Guard.perUser(60), m.Email.Send)
	}
}
