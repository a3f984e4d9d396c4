package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/courseware-labs/account-service/internal/container"
	handlers "github.com/courseware-labs/account-service/internal/interface/http"
	"github.com/courseware-labs/account-service/internal/interface/middleware"
	"github.com/courseware-labs/account-service/pkg/helpers"
)

// CoursesModule wires the course-catalog proxy route.
type CoursesModule struct {
	Handler *handlers.CoursesHandler
	JWT     *helpers.JWTManager
}

func NewCoursesModule(h *handlers.CoursesHandler, jwt *helpers.JWTManager) *CoursesModule {
	return &CoursesModule{Handler: h, JWT: jwt}
}

func (m *CoursesModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/courses", m.Handler.List)
	}
}
