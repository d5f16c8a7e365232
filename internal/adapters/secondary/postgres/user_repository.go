package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ahmedX999/customer-support-tickets-api/internal/core/domain"
	apperrors "github.com/ahmedX999/customer-support-tickets-api/internal/core/errors"
	"github.com/ahmedX999/customer-support-tickets-api/internal/core/ports"
)

// uniqueViolation is the Postgres error code for unique constraint breaches.
const uniqueViolation = "23505"

// UserRepository is the secondary adapter for user persistence.
type UserRepository struct {
	pool *pgxpool.Pool
}

var _ ports.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new user repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, hashed_password, role, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user      domain.User
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.HashedPassword,
		&user.Role, &user.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if updatedAt.Valid {
		user.UpdatedAt = &updatedAt.Time
	}
	return &user, nil
}

// Create persists a new user entity.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, name, email, hashed_password, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		user.ID, user.Name, user.Email, user.HashedPassword, string(user.Role),
	)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.ErrUserExists
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// List retrieves all users, newest first.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}
