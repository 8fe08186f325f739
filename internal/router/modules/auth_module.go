package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/mindstack/mindstack/internal/interface/http"
	"github.com/mindstack/mindstack/internal/interface/middleware"
	"github.com/mindstack/mindstack/pkg/helpers"
)

// AuthModule wires registration, login and profile routes.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/me, PUT /api/profile, PUT /api/profile/avatar
type AuthModule struct {
	Handler *handlers.AuthHandler
	Tokens  *helpers.TokenManager
}

func NewAuthModule(h *handlers.AuthHandler, tokens *helpers.TokenManager) *AuthModule {
	return &AuthModule{Handler: h, Tokens: tokens}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Handler.Register)
	rg.POST("/auth/login", m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Tokens))
	{
		auth.GET("/auth/me", m.Handler.Me)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.PUT("/profile/avatar", m.Handler.UploadAvatar)
	}
}
