package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courseware-labs/account-service/internal/application"
	"github.com/courseware-labs/account-service/pkg/response"
)

type CoursesHandler struct {
	Catalog *application.CatalogService
}

func NewCoursesHandler(catalog *application.CatalogService) *CoursesHandler {
	return &CoursesHandler{Catalog: catalog}
}

// List proxies the external catalog. The page always renders: an unreachable
// or misbehaving catalog collapses to an empty course list here, never to an
// error response.
func (h *CoursesHandler) List(c *gin.Context) {
	list := h.Catalog.ListCourses(c.Request.Context())
	response.Success(c, http.StatusOK, list.Courses, "courses", map[string]any{
		"count": len(list.Courses),
	})
}
