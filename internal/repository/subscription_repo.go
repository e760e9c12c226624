package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// New users start on the free plan with a fixed credit allotment.
const (
	defaultPlanType     = "free"
	defaultPlanName     = "Free Plan"
	defaultCreditsTotal = 50
)

const subscriptionColumns = `id, user_id, plan_type, plan_name, credits_total, credits_used, credits_remaining, billing_cycle, amount, currency, status, start_date, end_date, created_at, updated_at`

// subscriptionUpdatable is the allow-list for partial subscription updates.
// Credit counters are deliberately absent: they move only through UseCredits
// and AddCredits so every change lands in the ledger log.
var subscriptionUpdatable = []string{
	"plan_type", "plan_name", "billing_cycle", "amount",
	"currency", "status", "start_date", "end_date",
}

// SubscriptionRepository holds the credit ledger: the per-user counters plus
// the append-only credit_transactions log. Every counter mutation and its log
// row commit in one transaction.
type SubscriptionRepository interface {
	CreateDefaultSubscription(ctx context.Context, userID string) (*model.Subscription, error)
	GetSubscription(ctx context.Context, userID string) (*model.Subscription, error)
	UpdateSubscription(ctx context.Context, userID string, fields map[string]any) (*model.Subscription, error)
	// UseCredits debits amount from the user's balance. The decrement is a
	// single conditional UPDATE, so two concurrent debits can never both
	// spend the same credits. Returns ErrInsufficientCredits with no
	// mutation when the balance is too low.
	UseCredits(ctx context.Context, userID string, amount int, description string) (*model.Subscription, error)
	// AddCredits raises credits_total by amount and logs a purchase entry.
	AddCredits(ctx context.Context, userID string, amount int, description string) (*model.Subscription, error)
	ListTransactions(ctx context.Context, userID string, limit int) ([]model.CreditTransaction, error)
}

type subscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepo(pool *pgxpool.Pool) SubscriptionRepository {
	return &subscriptionRepo{pool: pool}
}

func (r *subscriptionRepo) CreateDefaultSubscription(ctx context.Context, userID string) (*model.Subscription, error) {
	if err := createDefaultSubscriptionTx(ctx, r.pool, userID); err != nil {
		return nil, err
	}
	return r.GetSubscription(ctx, userID)
}

// createDefaultSubscriptionTx inserts the starting free subscription inside
// an enclosing transaction during first-time user creation. ON CONFLICT makes
// a second call a no-op instead of a duplicate row.
func createDefaultSubscriptionTx(ctx context.Context, q querier, userID string) error {
	const stmt = `
		INSERT INTO subscriptions (user_id, plan_type, plan_name, credits_total, credits_used, status)
		VALUES ($1, $2, $3, $4, 0, 'active')
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := q.Exec(ctx, stmt, userID, defaultPlanType, defaultPlanName, defaultCreditsTotal); err != nil {
		return fmt.Errorf("creating default subscription for user %s: %w", userID, err)
	}
	return nil
}

func (r *subscriptionRepo) GetSubscription(ctx context.Context, userID string) (*model.Subscription, error) {
	const q = `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1`
	s, err := scanSubscription(r.pool.QueryRow(ctx, q, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching subscription for user %s: %w", userID, err)
	}
	return s, nil
}

func (r *subscriptionRepo) UpdateSubscription(ctx context.Context, userID string, fields map[string]any) (*model.Subscription, error) {
	set, args, err := buildUpdateSet(subscriptionUpdatable, fields)
	if err != nil {
		return nil, err
	}
	args = append(args, userID)
	q := fmt.Sprintf(`
		UPDATE subscriptions
		SET %s, updated_at = NOW()
		WHERE user_id = $%d
		RETURNING `+subscriptionColumns, set, len(args))
	s, err := scanSubscription(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("updating subscription for user %s: %w", userID, err)
	}
	return s, nil
}

func (r *subscriptionRepo) UseCredits(ctx context.Context, userID string, amount int, description string) (*model.Subscription, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("starting debit transaction for user %s: %w", userID, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// The balance check and the decrement are one statement: the WHERE
	// clause only matches while enough credits remain, so a stale read can
	// never drive the balance negative.
	const q = `
		UPDATE subscriptions
		SET credits_used = credits_used + $1, updated_at = NOW()
		WHERE user_id = $2 AND credits_used + $1 <= credits_total
		RETURNING ` + subscriptionColumns
	s, err := scanSubscription(tx.QueryRow(ctx, q, amount, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyMissedUpdate(ctx, userID)
		}
		return nil, fmt.Errorf("debiting %d credits for user %s: %w", amount, userID, err)
	}

	if err := logTransactionTx(ctx, tx, userID, model.TransactionUsage, -amount, description,
		s.CreditsRemaining+amount, s.CreditsRemaining); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing debit for user %s: %w", userID, err)
	}
	return s, nil
}

func (r *subscriptionRepo) AddCredits(ctx context.Context, userID string, amount int, description string) (*model.Subscription, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("starting credit transaction for user %s: %w", userID, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	const q = `
		UPDATE subscriptions
		SET credits_total = credits_total + $1, updated_at = NOW()
		WHERE user_id = $2
		RETURNING ` + subscriptionColumns
	s, err := scanSubscription(tx.QueryRow(ctx, q, amount, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("crediting %d credits for user %s: %w", amount, userID, err)
	}

	if err := logTransactionTx(ctx, tx, userID, model.TransactionPurchase, amount, description,
		s.CreditsRemaining-amount, s.CreditsRemaining); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing credit for user %s: %w", userID, err)
	}
	return s, nil
}

// classifyMissedUpdate tells a missing subscription apart from an
// insufficient balance after the conditional debit matched no row.
func (r *subscriptionRepo) classifyMissedUpdate(ctx context.Context, userID string) error {
	var exists bool
	const q = `SELECT EXISTS (SELECT 1 FROM subscriptions WHERE user_id = $1)`
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&exists); err != nil {
		return fmt.Errorf("checking subscription for user %s: %w", userID, err)
	}
	if !exists {
		return ErrSubscriptionNotFound
	}
	return ErrInsufficientCredits
}

// logTransactionTx appends one ledger log row inside the same transaction as
// the counter mutation it records.
func logTransactionTx(ctx context.Context, q querier, userID, txType string, amount int, description string, before, after int) error {
	const stmt = `
		INSERT INTO credit_transactions (user_id, transaction_type, amount, description, category, balance_before, balance_after)
		VALUES ($1, $2, $3, $4, $2, $5, $6)
	`
	if _, err := q.Exec(ctx, stmt, userID, txType, amount, description, before, after); err != nil {
		return fmt.Errorf("logging %s transaction for user %s: %w", txType, userID, err)
	}
	return nil
}

func (r *subscriptionRepo) ListTransactions(ctx context.Context, userID string, limit int) ([]model.CreditTransaction, error) {
	const q = `
		SELECT id, user_id, transaction_type, amount, description, category, balance_before, balance_after, created_at
		FROM credit_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	var txs []model.CreditTransaction
	for rows.Next() {
		var t model.CreditTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.TransactionType, &t.Amount, &t.Description,
			&t.Category, &t.BalanceBefore, &t.BalanceAfter, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning transaction row: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading transaction rows: %w", err)
	}
	return txs, nil
}

func scanSubscription(row pgx.Row) (*model.Subscription, error) {
	var s model.Subscription
	err := row.Scan(
		&s.ID, &s.UserID, &s.PlanType, &s.PlanName, &s.CreditsTotal, &s.CreditsUsed,
		&s.CreditsRemaining, &s.BillingCycle, &s.Amount, &s.Currency, &s.Status,
		&s.StartDate, &s.EndDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
