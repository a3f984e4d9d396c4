package application

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/courseware-labs/account-service/internal/domain/entity"
	repo "github.com/courseware-labs/account-service/internal/domain/repository"
	"github.com/courseware-labs/account-service/pkg/mailer"
	"github.com/courseware-labs/account-service/pkg/validation"
)

var ErrUserNotFound = errors.New("user not found")

// NoticePublisher pushes notification jobs onto the async mail queue.
type NoticePublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ProfileService owns the account-details read model and the two independent
// update flows (basic info, address). All mutations are scoped to the
// authenticated caller, passed explicitly as callerID.
type ProfileService struct {
	Repo     repo.UserRepository
	Redis    *redis.Client
	Logger   *logrus.Logger
	Notifier NoticePublisher

	validate *validator.Validate
}

func NewProfileService(r repo.UserRepository, rdb *redis.Client, logger *logrus.Logger, notifier NoticePublisher) *ProfileService {
	return &ProfileService{
		Repo:     r,
		Redis:    rdb,
		Logger:   logger,
		Notifier: notifier,
		validate: validation.New(),
	}
}

// BasicInfo is the flattened basic-details section of the profile view.
type BasicInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Bio       string `json:"bio"`
}

// AddressInfo is the flattened address section; all fields are empty strings
// when the user has no address yet.
type AddressInfo struct {
	Line1      string `json:"address_line_1"`
	Line2      string `json:"address_line_2"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

// ProfileView is the denormalized account-details page model.
type ProfileView struct {
	ID           string      `json:"id"`
	Basic        BasicInfo   `json:"basic"`
	Address      AddressInfo `json:"address"`
	ProfileImage string      `json:"profile_image"`
}

type BasicInfoInput struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,phone"`
	Bio       string `json:"bio" validate:"omitempty"`
}

type AddressInput struct {
	Line1      string `json:"address_line_1" validate:"required"`
	Line2      string `json:"address_line_2" validate:"omitempty"`
	PostalCode string `json:"postal_code" validate:"required"`
	City       string `json:"city" validate:"required"`
}

// ReadProfile fetches the user joined with its optional address in one
// consistent read and flattens both into the page model.
func (s *ProfileService) ReadProfile(ctx context.Context, userID string) (*ProfileView, error) {
	u, err := s.Repo.GetByID(ctx, userID, true)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	view := &ProfileView{
		ID: u.ID,
		Basic: BasicInfo{
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Phone:     u.Phone,
			Bio:       u.Bio,
		},
		ProfileImage: u.ProfileImage,
	}
	if u.Address != nil {
		view.Address = AddressInfo{
			Line1:      u.Address.Line1,
			Line2:      u.Address.Line2,
			PostalCode: u.Address.PostalCode,
			City:       u.Address.City,
		}
	}
	return view, nil
}

// UpdateBasicInfo overwrites the caller's basic fields and keeps the login
// name in lock-step with the email. Validation failure leaves the record
// untouched; a rejected save is abandoned, not retried.
func (s *ProfileService) UpdateBasicInfo(ctx context.Context, callerID string, in BasicInfoInput) Result {
	if fields := s.check(in); fields != nil {
		return invalid(fields)
	}

	u, err := s.Repo.GetByID(ctx, callerID, false)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return failed(OutcomeNotFound)
		}
		return failed(OutcomePersistenceFailed)
	}

	previousEmail := u.Email
	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.Phone = in.Phone
	u.Bio = in.Bio
	u.SetEmail(in.Email)

	if err := s.Repo.Save(ctx, u); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("save basic info failed")
		}
		return failed(OutcomePersistenceFailed)
	}

	s.refreshSession(ctx, u)
	if previousEmail != u.Email {
		s.publishEmailChanged(ctx, previousEmail, u)
	}
	return succeeded()
}

// upsertDecision tags whether the address save creates or mutates, computed
// once from the loaded aggregate before any mutation.
type upsertDecision int

const (
	upsertCreate upsertDecision = iota
	upsertUpdate
)

func decideUpsert(u *entity.User) upsertDecision {
	if u.Address == nil {
		return upsertCreate
	}
	return upsertUpdate
}

// UpdateAddress upserts the caller's address: mutate in place when one is
// loaded, attach a new one otherwise. The whole aggregate goes through a
// single save, so no partial field writes are ever observable.
func (s *ProfileService) UpdateAddress(ctx context.Context, callerID string, in AddressInput) Result {
	if fields := s.check(in); fields != nil {
		return invalid(fields)
	}

	u, err := s.Repo.GetByID(ctx, callerID, true)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return failed(OutcomeNotFound)
		}
		return failed(OutcomePersistenceFailed)
	}

	switch decideUpsert(u) {
	case upsertUpdate:
		u.Address.Line1 = in.Line1
		u.Address.Line2 = in.Line2
		u.Address.PostalCode = in.PostalCode
		u.Address.City = in.City
	case upsertCreate:
		u.Address = &entity.Address{
			UserID:     u.ID,
			Line1:      in.Line1,
			Line2:      in.Line2,
			PostalCode: in.PostalCode,
			City:       in.City,
		}
	}

	if err := s.Repo.Save(ctx, u); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("save address failed")
		}
		return failed(OutcomePersistenceFailed)
	}
	return succeeded()
}

func (s *ProfileService) check(in any) []FieldError {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	details := validation.ToDetails(err)
	fields := make([]FieldError, 0, len(details))
	for f, reason := range details {
		fields = append(fields, FieldError{Field: f, Reason: reason})
	}
	return fields
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// refreshSession mirrors the updated identity fields into the Redis session
// hash, preserving its TTL. Best effort. An expired session is left expired:
// writing into a missing key would resurrect it without a TTL.
func (s *ProfileService) refreshSession(ctx context.Context, u *entity.User) {
	if s.Redis == nil {
		return
	}
	key := sessionKey(u.ID)
	ttl, err := s.Redis.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		return
	}
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"email":      u.Email,
		"name":       u.FirstName + " " + u.LastName,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
	}
}

// publishEmailChanged queues a security notice to the previous address.
// Fire and forget: a broker failure never fails the profile update.
func (s *ProfileService) publishEmailChanged(ctx context.Context, previousEmail string, u *entity.User) {
	if s.Notifier == nil {
		return
	}
	job := mailer.NotificationJob{
		To:       previousEmail,
		Kind:     mailer.KindEmailChanged,
		UserID:   u.ID,
		NewEmail: u.Email,
	}
	if err := s.Notifier.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("publish email-change notice failed")
	}
}
