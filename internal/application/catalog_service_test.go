package application

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCoursesOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Courses", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"c1","title":"Go for Beginners","author":"A. Author"},
			{"id":"c2","title":"Advanced SQL","author":"B. Author","isBestseller":true}
		]`))
	}))
	defer srv.Close()

	svc := NewCatalogService(srv.Client(), srv.URL, nil)
	list := svc.ListCourses(context.Background())

	assert.Equal(t, ListOK, list.Status)
	require.Len(t, list.Courses, 2)
	assert.Equal(t, "Go for Beginners", list.Courses[0].Title)
	assert.True(t, list.Courses[1].IsBestseller)
}

func TestListCoursesEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	list := NewCatalogService(srv.Client(), srv.URL, nil).ListCourses(context.Background())
	assert.Equal(t, ListOK, list.Status)
	assert.NotNil(t, list.Courses)
	assert.Empty(t, list.Courses)
}

func TestListCoursesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	list := NewCatalogService(srv.Client(), srv.URL, nil).ListCourses(context.Background())
	assert.Equal(t, ListUnavailable, list.Status)
	assert.NotNil(t, list.Courses)
	assert.Empty(t, list.Courses)
}

func TestListCoursesMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer srv.Close()

	list := NewCatalogService(srv.Client(), srv.URL, nil).ListCourses(context.Background())
	assert.Equal(t, ListMalformed, list.Status)
	assert.Empty(t, list.Courses)
}

func TestListCoursesUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	list := NewCatalogService(nil, url, nil).ListCourses(context.Background())
	assert.Equal(t, ListUnavailable, list.Status)
	assert.Empty(t, list.Courses)
}
