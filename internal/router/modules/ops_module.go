package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/estate-listing-api/internal/interface/middleware"
)

// DebugModule exposes expvar under /api/debug/vars to private networks.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", middleware.PrivateOnly(), gin.WrapH(expvar.Handler()))
}
