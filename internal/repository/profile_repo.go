package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const profileColumns = `id, user_id, full_name, phone, user_type, organization, designation, bio, location, timezone, language, created_at, updated_at`

// profileUpdatable is the allow-list of columns a partial profile update may
// touch. Identity columns (id, user_id) are excluded by construction.
var profileUpdatable = []string{
	"full_name", "phone", "user_type", "organization",
	"designation", "bio", "location", "timezone", "language",
}

type ProfileRepository interface {
	CreateProfile(ctx context.Context, userID string) (*model.UserProfile, error)
	GetProfile(ctx context.Context, userID string) (*model.UserProfile, error)
	// UpdateProfile applies the supplied fields only. Returns
	// ErrNoFieldsToUpdate without writing when nothing updatable was supplied.
	UpdateProfile(ctx context.Context, userID string, fields map[string]any) (*model.UserProfile, error)
}

type profileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepo{pool: pool}
}

func (r *profileRepo) CreateProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	const q = `INSERT INTO user_profiles (user_id) VALUES ($1) RETURNING ` + profileColumns
	p, err := scanProfile(r.pool.QueryRow(ctx, q, userID))
	if err != nil {
		return nil, fmt.Errorf("creating profile for user %s: %w", userID, err)
	}
	return p, nil
}

// createProfileTx inserts the empty profile row inside an enclosing
// transaction during first-time user creation.
func createProfileTx(ctx context.Context, q querier, userID string) error {
	const stmt = `INSERT INTO user_profiles (user_id) VALUES ($1)`
	if _, err := q.Exec(ctx, stmt, userID); err != nil {
		return fmt.Errorf("creating profile for user %s: %w", userID, err)
	}
	return nil
}

func (r *profileRepo) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	const q = `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = $1`
	p, err := scanProfile(r.pool.QueryRow(ctx, q, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching profile for user %s: %w", userID, err)
	}
	return p, nil
}

func (r *profileRepo) UpdateProfile(ctx context.Context, userID string, fields map[string]any) (*model.UserProfile, error) {
	set, args, err := buildUpdateSet(profileUpdatable, fields)
	if err != nil {
		return nil, err
	}
	args = append(args, userID)
	q := fmt.Sprintf(`
		UPDATE user_profiles
		SET %s, updated_at = NOW()
		WHERE user_id = $%d
		RETURNING `+profileColumns, set, len(args))
	p, err := scanProfile(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("updating profile for user %s: %w", userID, err)
	}
	return p, nil
}

func scanProfile(row pgx.Row) (*model.UserProfile, error) {
	var p model.UserProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Phone, &p.UserType, &p.Organization,
		&p.Designation, &p.Bio, &p.Location, &p.Timezone, &p.Language,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
