package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"droneport/internal/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateName  = errors.New("name already taken")
	ErrDuplicateEmail = errors.New("email already registered")
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts the account. Uniqueness of name and email is enforced by the
// table constraints; a violation is translated to the matching sentinel so the
// pre-check race in the service layer resolves deterministically.
func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (
			id, name, email, password_hash, created_at
		) VALUES (
			$1, $2, $3, $4, NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.ConstraintName {
			case "users_name_key":
				return ErrDuplicateName
			case "users_email_key":
				return ErrDuplicateEmail
			}
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindByName(ctx context.Context, name string) (models.User, error) {
	const query = `
		SELECT id, name, email, password_hash, created_at
		FROM users WHERE name = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, name))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, name, email, password_hash, created_at
		FROM users WHERE email = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) scanOne(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
