package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/mindstack/mindstack/internal/interface/http"
	"github.com/mindstack/mindstack/internal/interface/middleware"
	"github.com/mindstack/mindstack/pkg/helpers"
)

type TodoModule struct {
	Handler *handlers.TodoHandler
	Tokens  *helpers.TokenManager
}

func NewTodoModule(h *handlers.TodoHandler, tokens *helpers.TokenManager) *TodoModule {
	return &TodoModule{Handler: h, Tokens: tokens}
}

func (m *TodoModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/todos")
	auth.Use(middleware.Auth(m.Tokens))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("", m.Handler.List)
		auth.GET("/:id", m.Handler.Get)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
