package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/mindstack/mindstack/internal/interface/http"
	"github.com/mindstack/mindstack/internal/interface/middleware"
	"github.com/mindstack/mindstack/pkg/helpers"
)

type ThoughtModule struct {
	Handler *handlers.ThoughtHandler
	Tokens  *helpers.TokenManager
}

func NewThoughtModule(h *handlers.ThoughtHandler, tokens *helpers.TokenManager) *ThoughtModule {
	return &ThoughtModule{Handler: h, Tokens: tokens}
}

func (m *ThoughtModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/thoughts")
	auth.Use(middleware.Auth(m.Tokens))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("", m.Handler.List)
		auth.GET("/search", m.Handler.Search)
		auth.GET("/:id", m.Handler.Get)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
