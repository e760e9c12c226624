package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const userColumns = `id, email, name, username, image, google_id, email_verified, is_active, created_at, updated_at, last_login_at`

type UserRepository interface {
	// CreateOrUpdateUser resolves an external identity to a user row. An
	// existing user (matched by email or google id) is refreshed in place; a
	// new user is inserted together with an empty profile and the default
	// free subscription in one transaction.
	CreateOrUpdateUser(ctx context.Context, email, name string, image *string, googleID string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserOverview(ctx context.Context, id string) (*model.UserOverview, error)
}

type userRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) UserRepository {
	return &userRepo{pool: pool}
}

func (r *userRepo) CreateOrUpdateUser(ctx context.Context, email, name string, image *string, googleID string) (*model.User, error) {
	u, err := r.refreshUser(ctx, email, name, image, googleID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	u, err = r.insertUser(ctx, email, name, image, googleID)
	if err == nil {
		return u, nil
	}

	// A concurrent first sign-in for the same identity may have inserted the
	// row between our lookup and insert. The unique constraints on email and
	// google_id make the loser fail with 23505; re-resolve as an update.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		u, retryErr := r.refreshUser(ctx, email, name, image, googleID)
		if retryErr != nil {
			return nil, retryErr
		}
		if u != nil {
			return u, nil
		}
	}
	return nil, err
}

// refreshUser updates and returns the user matched by email or google id, or
// (nil, nil) when no such user exists yet.
func (r *userRepo) refreshUser(ctx context.Context, email, name string, image *string, googleID string) (*model.User, error) {
	const q = `
		UPDATE users
		SET name = $1, image = $2, google_id = $3, last_login_at = NOW(), updated_at = NOW()
		WHERE email = $4 OR google_id = $3
		RETURNING ` + userColumns
	u, err := scanUser(r.pool.QueryRow(ctx, q, name, image, googleID, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("refreshing user %s: %w", email, err)
	}
	return u, nil
}

func (r *userRepo) insertUser(ctx context.Context, email, name string, image *string, googleID string) (*model.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("starting user creation transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	const q = `
		INSERT INTO users (email, name, image, google_id, email_verified, last_login_at)
		VALUES ($1, $2, $3, $4, true, NOW())
		RETURNING ` + userColumns
	u, err := scanUser(tx.QueryRow(ctx, q, email, name, image, googleID))
	if err != nil {
		return nil, fmt.Errorf("inserting user %s: %w", email, err)
	}

	// The profile and subscription rows must appear with the user or not at
	// all; a user without either is an invariant violation.
	if err := createProfileTx(ctx, tx, u.ID); err != nil {
		return nil, err
	}
	if err := createDefaultSubscriptionTx(ctx, tx, u.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing user creation for %s: %w", email, err)
	}
	return u, nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching user %s: %w", id, err)
	}
	return u, nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, q, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching user by email: %w", err)
	}
	return u, nil
}

// GetUserOverview returns the joined user + profile + subscription view for
// the dashboard. Profile and subscription columns are NULL until those rows
// exist, so they scan into pointers.
func (r *userRepo) GetUserOverview(ctx context.Context, id string) (*model.UserOverview, error) {
	const q = `
		SELECT u.id, u.email, u.name, u.username, u.image, u.google_id,
		       u.email_verified, u.is_active, u.created_at, u.updated_at, u.last_login_at,
		       p.full_name, p.phone, p.user_type, p.organization, p.designation, p.bio, p.location,
		       s.plan_type, s.plan_name, s.credits_total, s.credits_used, s.credits_remaining,
		       s.status AS subscription_status
		FROM users u
		LEFT JOIN user_profiles p ON u.id = p.user_id
		LEFT JOIN subscriptions s ON u.id = s.user_id
		WHERE u.id = $1
	`
	var o model.UserOverview
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&o.ID, &o.Email, &o.Name, &o.Username, &o.Image, &o.GoogleID,
		&o.EmailVerified, &o.IsActive, &o.CreatedAt, &o.UpdatedAt, &o.LastLoginAt,
		&o.FullName, &o.Phone, &o.UserType, &o.Organization, &o.Designation, &o.Bio, &o.Location,
		&o.PlanType, &o.PlanName, &o.CreditsTotal, &o.CreditsUsed, &o.CreditsRemaining,
		&o.SubscriptionStatus,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching overview for user %s: %w", id, err)
	}
	return &o, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Username, &u.Image, &u.GoogleID,
		&u.EmailVerified, &u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
