package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	repo "github.com/courseware-labs/account-service/internal/domain/repository"
	"github.com/courseware-labs/account-service/internal/storage"
)

// ImageService validates and persists profile image uploads, then swaps the
// user's image reference to the new object.
type ImageService struct {
	Repo   repo.UserRepository
	Store  storage.ObjectStore
	Logger *logrus.Logger
}

func NewImageService(r repo.UserRepository, store storage.ObjectStore, logger *logrus.Logger) *ImageService {
	return &ImageService{Repo: r, Store: store, Logger: logger}
}

// UploadProfileImage writes the file under a collision-resistant key
// (p_<userID>_<uuid><ext>) and points the user's image reference at it.
// An unresolvable caller or an empty file is a no-op reported as skipped.
//
// If the reference update fails the freshly written object is removed, and on
// success the superseded object is deleted best effort, so old images do not
// pile up in the store.
func (s *ImageService) UploadProfileImage(ctx context.Context, callerID string, file io.Reader, size int64, filename string) (string, Result) {
	if callerID == "" || file == nil || size == 0 {
		return "", failed(OutcomeSkipped)
	}

	u, err := s.Repo.GetByID(ctx, callerID, false)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", failed(OutcomeSkipped)
		}
		return "", failed(OutcomePersistenceFailed)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("p_%s_%s%s", u.ID, uuid.NewString(), ext)

	if err := s.Store.Put(ctx, key, file, size, contentTypeFor(ext)); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("image store write failed")
		}
		return "", failed(OutcomePersistenceFailed)
	}

	previous := u.ProfileImage
	u.ProfileImage = key
	if err := s.Repo.Save(ctx, u); err != nil {
		// Compensate: the reference never switched, drop the orphan.
		if delErr := s.Store.Delete(ctx, key); delErr != nil && s.Logger != nil {
			s.Logger.WithError(delErr).WithField("key", key).Warn("orphan cleanup failed")
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("image reference update failed")
		}
		return "", failed(OutcomePersistenceFailed)
	}

	if previous != "" && previous != key {
		if err := s.Store.Delete(ctx, previous); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", previous).Warn("delete superseded image failed")
		}
	}

	return key, succeeded()
}

func contentTypeFor(ext string) string {
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
