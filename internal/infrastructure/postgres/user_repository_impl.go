package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courseware-labs/account-service/internal/domain/entity"
	"github.com/courseware-labs/account-service/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, username, password_hash, first_name, last_name, phone, bio, profile_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Username, u.Password, u.FirstName, u.LastName, u.Phone, u.Bio, u.ProfileImage)

	return row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id string, includeAddress bool) (*entity.User, error) {
	if !includeAddress {
		row := r.pool.QueryRow(ctx, `
			SELECT id, email, username, password_hash, first_name, last_name, phone, bio, profile_image, created_at, updated_at
			FROM users
			WHERE id = $1
		`, id)
		return scanUser(row)
	}

	// Single joined fetch keeps the user and its optional address consistent
	// with each other; two reads could straddle a concurrent save.
	row := r.pool.QueryRow(ctx, `
		SELECT u.id, u.email, u.username, u.password_hash, u.first_name, u.last_name,
		       u.phone, u.bio, u.profile_image, u.created_at, u.updated_at,
		       a.user_id, a.line1, a.line2, a.postal_code, a.city, a.updated_at
		FROM users u
		LEFT JOIN addresses a ON a.user_id = u.id
		WHERE u.id = $1
	`, id)

	u := &entity.User{}
	var (
		addrUserID *string
		line1      *string
		line2      *string
		postalCode *string
		city       *string
		addrUpd    *time.Time
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Password, &u.FirstName, &u.LastName,
		&u.Phone, &u.Bio, &u.ProfileImage, &u.CreatedAt, &u.UpdatedAt,
		&addrUserID, &line1, &line2, &postalCode, &city, &addrUpd); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if addrUserID != nil {
		u.Address = &entity.Address{
			UserID:     *addrUserID,
			Line1:      deref(line1),
			Line2:      deref(line2),
			PostalCode: deref(postalCode),
			City:       deref(city),
		}
		if addrUpd != nil {
			u.Address.UpdatedAt = *addrUpd
		}
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, username, password_hash, first_name, last_name, phone, bio, profile_image, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

// Save writes the whole aggregate in one transaction: the user row always,
// the address row upserted when present. A user with no loaded address leaves
// the addresses table untouched.
func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, `
		UPDATE users
		SET email = $1, username = $2, first_name = $3, last_name = $4,
		    phone = $5, bio = $6, profile_image = $7, updated_at = $8
		WHERE id = $9
	`, u.Email, u.Username, u.FirstName, u.LastName, u.Phone, u.Bio, u.ProfileImage, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	if u.Address != nil {
		u.Address.UserID = u.ID
		u.Address.UpdatedAt = u.UpdatedAt
		if _, err := tx.Exec(ctx, `
			INSERT INTO addresses (user_id, line1, line2, postal_code, city, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (user_id) DO UPDATE
			SET line1 = EXCLUDED.line1, line2 = EXCLUDED.line2,
			    postal_code = EXCLUDED.postal_code, city = EXCLUDED.city,
			    updated_at = EXCLUDED.updated_at
		`, u.Address.UserID, u.Address.Line1, u.Address.Line2, u.Address.PostalCode, u.Address.City, u.Address.UpdatedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Password, &u.FirstName, &u.LastName,
		&u.Phone, &u.Bio, &u.ProfileImage, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ repository.UserRepository = (*UserRepository)(nil)
