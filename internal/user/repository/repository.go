package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	commonerrors "github.com/seo-pirate/backend/internal/common/errors"
	"github.com/seo-pirate/backend/internal/user/domain"
)

var (
	ErrUserNotFound       = commonerrors.ErrUserNotFound
	ErrEmailAlreadyExists = commonerrors.ErrEmailAlreadyExists
)

type Repository interface {
	Create(ctx context.Context, user domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, email, username, password_hash) VALUES ($1, $2, $3, $4)`,
		string(user.ID),
		user.Email,
		user.Username,
		user.PasswordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(
		ctx,
		`SELECT id, email, username, password_hash, created_at, updated_at
		 FROM users WHERE lower(email) = lower($1)`,
		email,
	)
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(
		ctx,
		`SELECT id, email, username, password_hash, created_at, updated_at
		 FROM users WHERE username = $1`,
		username,
	)
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	return r.findOne(
		ctx,
		`SELECT id, email, username, password_hash, created_at, updated_at
		 FROM users WHERE id = $1`,
		string(id),
	)
}

func (r *PgRepository) findOne(ctx context.Context, query string, arg any) (domain.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func (r *PgRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE users
		 SET username = $2, password_hash = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING id, email, username, password_hash, created_at, updated_at`,
		string(user.ID),
		user.Username,
		user.PasswordHash,
	)

	var updated domain.User
	err := row.Scan(&updated.ID, &updated.Email, &updated.Username, &updated.PasswordHash, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return updated, nil
}
