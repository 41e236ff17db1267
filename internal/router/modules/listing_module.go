package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/estate-listing-api/internal/interface/http"
)

// ListingModule serves public browsing and owner management of listings.
// Reads accept anonymous callers; a valid token widens what is visible.
type ListingModule struct {
	Handler *handlers.ListingHandler
	Guard   Guard
}

func NewListingModule(h *handlers.ListingHandler, g Guard) *ListingModule {
	return &ListingModule{Handler: h, Guard: g}
}

func (m *ListingModule) Register(rg *gin.RouterGroup) {
	public := rg.Group("/", m.Guard.Optional, m.Guard.perIP(300))
	{
		public.GET("/listings", m.Handler.List)
		public.GET("/listings/search", m.Handler.Search)
		public.GET("/listings/:id", m.Handler.Get)
	}

	auth := m.Guard.authed(rg)
	{
		auth.POST("/listings", m.Handler.Create)
		auth.PUT("/listings/:id", m.Handler.Update)
		auth.POST("/listings/:id/publish", m.Handler.Publish())
		auth.POST("/listings/:id/pending", m.Handler.MarkPending())
		auth.POST("/listings/:id/close", m.Handler.Close())
		auth.POST("/listings/:id/archive", m.Handler.Archive())
		auth.DELETE("/listings/:id", m.Handler.Delete)
	}
}
