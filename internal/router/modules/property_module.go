package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/estate-listing-api/internal/interface/http"
)

type PropertyModule struct {
	Handler   *handlers.PropertyHandler
	Proposals *handlers.ProposalHandler
	Guard     Guard
}

func NewPropertyModule(h *handlers.PropertyHandler, proposals *handlers.ProposalHandler, g Guard) *PropertyModule {
	return &PropertyModule{Handler: h, Proposals: proposals, Guard: g}
}

func (m *PropertyModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.authed(rg)
	{
		auth.POST("/properties", m.Handler.Create)
		auth.GET("/properties", m.Handler.ListMine)
		auth.GET("/properties/:id", m.Handler.Get)
		auth.PUT("/properties/:id", m.Handler.Update)
		auth.DELETE("/properties/:id", m.Handler.Delete)
		auth.POST("/properties/:id/geocode", m.Guard.perUser(10), m.Handler.Geocode)

		auth.GET("/properties/:id/attributes", m.Handler.ListAttributeValues)
		auth.PUT("/properties/:id/attributes", m.Handler.SetAttributeValue)
		auth.DELETE("/properties/:id/attributes/:valueId", m.Handler.RemoveAttributeValue)

		auth.GET("/properties/:id/media", m.Handler.ListMedia)
		auth.POST("/properties/:id/media", m.Handler.UploadMedia)
		auth.DELETE("/properties/:id/media/:mediaId", m.Handler.DeleteMedia)

		auth.GET("/properties/:id/proposals", m.Proposals.ListForProperty)
		auth.GET("/attributes", m.Handler.ListAttributes)
	}

	admin := m.Guard.admin(rg)
	admin.POST("/attributes", m.Handler.CreateAttribute)
}
