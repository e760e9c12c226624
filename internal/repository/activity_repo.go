package repository

import (
	"context"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityRepository appends audit rows. There is no read path in this
// service; the admin surface queries the table directly.
type ActivityRepository interface {
	InsertActivity(ctx context.Context, entry *model.ActivityLog) error
}

type activityRepo struct {
	pool *pgxpool.Pool
}

func NewActivityRepo(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepo{pool: pool}
}

func (r *activityRepo) InsertActivity(ctx context.Context, entry *model.ActivityLog) error {
	const q = `
		INSERT INTO activity_logs (user_id, action, category, description, metadata, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, q,
		entry.UserID, entry.Action, entry.Category, entry.Description,
		entry.Metadata, entry.IPAddress, entry.UserAgent)
	if err != nil {
		return fmt.Errorf("inserting activity %s for user %s: %w", entry.Action, entry.UserID, err)
	}
	return nil
}
