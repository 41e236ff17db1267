package router

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Module is a feature area that mounts its routes on the API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry collects modules and group-wide middleware, then mounts them
// under one base path in a single pass.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

const apiBase = "/api"

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group(apiBase)}
}

// Use adds middleware that runs before every module route.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}

// APIRoutes lists the mounted "METHOD path" pairs under the base path.
func (r *Registry) APIRoutes() []string {
	var out []string
	for _, rt := range r.Engine.Routes() {
		if strings.HasPrefix(rt.Path, apiBase+"/") {
			out = append(out, rt.Method+" "+rt.Path)
		}
	}
	return out
}
