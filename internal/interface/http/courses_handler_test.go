package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseware-labs/account-service/internal/application"
)

func listCourses(t *testing.T, catalogStatus int, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(catalogStatus)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(catalog.Close)

	h := NewCoursesHandler(application.NewCatalogService(catalog.Client(), catalog.URL, nil))
	r := gin.New()
	r.GET("/api/courses", h.List)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestCoursesListRendersCourses(t *testing.T) {
	w := listCourses(t, http.StatusOK, `[{"id":"c1","title":"Go for Beginners"}]`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Go for Beginners", resp.Data[0].Title)
}

// A broken catalog must never break the page: still 200, just no courses.
func TestCoursesListDegradesToEmptyOnCatalogFailure(t *testing.T) {
	for name, tc := range map[string]struct {
		status int
		body   string
	}{
		"server error":   {http.StatusInternalServerError, ""},
		"malformed body": {http.StatusOK, `{"oops"`},
	} {
		w := listCourses(t, tc.status, tc.body)
		require.Equal(t, http.StatusOK, w.Code, name)

		var resp struct {
			Success bool              `json:"success"`
			Data    []json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), name)
		assert.True(t, resp.Success, name)
		assert.Empty(t, resp.Data, name)
	}
}
