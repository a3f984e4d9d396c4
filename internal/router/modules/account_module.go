package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/courseware-labs/account-service/internal/container"
	handlers "github.com/courseware-labs/account-service/internal/interface/http"
	"github.com/courseware-labs/account-service/internal/interface/middleware"
	"github.com/courseware-labs/account-service/pkg/helpers"
)

// AccountModule wires the account-details routes. Everything here is
// protected: the profile is only ever the authenticated caller's own.
type AccountModule struct {
	Handler *handlers.AccountHandler
	JWT     *helpers.JWTManager
}

func NewAccountModule(h *handlers.AccountHandler, jwt *helpers.JWTManager) *AccountModule {
	return &AccountModule{Handler: h, JWT: jwt}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/account", m.Handler.Details)
		auth.PUT("/account/basic", m.Handler.UpdateBasicInfo)
		auth.PUT("/account/address", m.Handler.UpdateAddress)
		auth.POST("/account/image", m.Handler.UploadImage)
	}
}
