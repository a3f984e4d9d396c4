package application

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/courseware-labs/account-service/internal/domain/entity"
)

// ListStatus tags how a catalog listing ended. Callers that do not care can
// treat anything but ListOK as an empty result; the tag exists so those that
// do care can tell "service down" from "no courses".
type ListStatus int

const (
	ListOK ListStatus = iota
	ListUnavailable
	ListMalformed
)

// CourseList is the tagged outcome of one catalog call.
type CourseList struct {
	Status  ListStatus
	Courses []entity.CourseSummary
}

// CatalogService proxies the external course-catalog API. It never returns an
// error: transport and decode failures degrade to an empty, tagged result.
type CatalogService struct {
	Client  *http.Client
	BaseURL string
	Logger  *logrus.Logger
}

func NewCatalogService(client *http.Client, baseURL string, logger *logrus.Logger) *CatalogService {
	if client == nil {
		client = http.DefaultClient
	}
	return &CatalogService{Client: client, BaseURL: strings.TrimRight(baseURL, "/"), Logger: logger}
}

// ListCourses fetches the full course list from the catalog service.
// Courses is never nil.
func (s *CatalogService) ListCourses(ctx context.Context) CourseList {
	empty := []entity.CourseSummary{}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/api/Courses", nil)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("catalog request build failed")
		}
		return CourseList{Status: ListUnavailable, Courses: empty}
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("catalog unreachable")
		}
		return CourseList{Status: ListUnavailable, Courses: empty}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if s.Logger != nil {
			s.Logger.WithField("status", resp.StatusCode).Warn("catalog returned non-success status")
		}
		return CourseList{Status: ListUnavailable, Courses: empty}
	}

	var courses []entity.CourseSummary
	if err := json.NewDecoder(resp.Body).Decode(&courses); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("catalog response malformed")
		}
		return CourseList{Status: ListMalformed, Courses: empty}
	}
	if courses == nil {
		courses = empty
	}
	return CourseList{Status: ListOK, Courses: courses}
}
