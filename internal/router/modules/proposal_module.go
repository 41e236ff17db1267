package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/estate-listing-api/internal/interface/http"
)

type ProposalModule struct {
	Handler *handlers.ProposalHandler
	Guard   Guard
}

func NewProposalModule(h *handlers.ProposalHandler, g Guard) *ProposalModule {
	return &ProposalModule{Handler: h, Guard: g}
}

func (m *ProposalModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.authed(rg)
	{
		auth.POST("/proposals", m.Handler.Create)
		auth.GET("/proposals/mine", m.Handler.ListMine)
		auth.GET("/proposals/:id", m.Handler.Get)
		auth.PUT("/proposals/:id", m.Handler.Update)
		auth.POST("/proposals/:id/activate", m.Handler.Activate)
		auth.POST("/proposals/:id/archive", m.Handler.Archive)
		auth.DELETE("/proposals/:id", m.Handler.Delete)
	}
}
