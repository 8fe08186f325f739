package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/mindstack/mindstack/internal/interface/http"
	"github.com/mindstack/mindstack/internal/interface/middleware"
	"github.com/mindstack/mindstack/pkg/helpers"
)

type HabitModule struct {
	Handler *handlers.HabitHandler
	Tokens  *helpers.TokenManager
}

func NewHabitModule(h *handlers.HabitHandler, tokens *helpers.TokenManager) *HabitModule {
	return &HabitModule{Handler: h, Tokens: tokens}
}

func (m *HabitModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/habits")
	auth.Use(middleware.Auth(m.Tokens))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("", m.Handler.List)
		auth.POST("/regenerate", m.Handler.Regenerate)

		// Instance routes must come before /:id to avoid the wildcard.
		auth.GET("/instances", m.Handler.ListInstances)
		auth.PUT("/instances/:id", m.Handler.UpdateInstance)
		auth.DELETE("/instances/:id", m.Handler.DeleteInstance)

		auth.GET("/:id", m.Handler.Get)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
