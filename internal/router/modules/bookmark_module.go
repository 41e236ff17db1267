package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/estate-listing-api/internal/interface/http"
)

type BookmarkModule struct {
	Handler *handlers.BookmarkHandler
	Guard   Guard
}

func NewBookmarkModule(h *handlers.BookmarkHandler, g Guard) *BookmarkModule {
	return &BookmarkModule{Handler: h, Guard: g}
}

func (m *BookmarkModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.authed(rg)
	{
		auth.POST("/bookmarks/toggle", m.Handler.Toggle)
		auth.PUT("/bookmarks", m.Handler.Set)
		auth.GET("/bookmarks", m.Handler.List)
		auth.GET("/bookmarks/:listingId", m.Handler.Status)
	}
}
