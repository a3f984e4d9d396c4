package repository

import (
	"context"
	"errors"

	"github.com/courseware-labs/account-service/internal/domain/entity"
)

// ErrNotFound is returned when no user matches the given identity.
var ErrNotFound = errors.New("not found")

// UserRepository is the persistence contract for the user aggregate.
//
// GetByID with includeAddress=true performs a single consistent fetch of the
// user and its optional address (one joined query, not two reads). Save
// persists the whole aggregate in one transaction: the user row plus, when
// u.Address is set, an upsert of the address row keyed by user id.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string, includeAddress bool) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Save(ctx context.Context, u *entity.User) error
}
