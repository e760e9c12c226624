package service

import (
	"context"
	"errors"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

var ErrInvalidCreditAmount = errors.New("credit amount must be positive")

const (
	defaultTransactionLimit = 50
	maxTransactionLimit     = 200
)

// SubscriptionService is the business surface of the credit ledger.
type SubscriptionService interface {
	Get(ctx context.Context, userID string) (*model.Subscription, error)
	Update(ctx context.Context, userID string, fields map[string]any) (*model.Subscription, error)
	UseCredits(ctx context.Context, userID string, amount int, description string) (*model.Subscription, error)
	AddCredits(ctx context.Context, userID string, amount int, description string) (*model.Subscription, error)
	ListTransactions(ctx context.Context, userID string, limit int) ([]model.CreditTransaction, error)
}

type subscriptionService struct {
	repo   repository.SubscriptionRepository
	logger zerolog.Logger
}

func NewSubscriptionService(repo repository.SubscriptionRepository, logger zerolog.Logger) SubscriptionService {
	return &subscriptionService{
		repo:   repo,
		logger: logger.With().Str("service", "SubscriptionService").Logger(),
	}
}

func (s *subscriptionService) Get(ctx context.Context, userID string) (*model.Subscription, error) {
	sub, err := s.repo.GetSubscription(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch subscription")
		return nil, err
	}
	if sub == nil {
		return nil, repository.ErrSubscriptionNotFound
	}
	return sub, nil
}

func (s *subscriptionService) Update(ctx context.Context, userID string, fields map[string]any) (*model.Subscription, error) {
	sub, err := s.repo.UpdateSubscription(ctx, userID, fields)
	if err != nil {
		if !errors.Is(err, repository.ErrNoFieldsToUpdate) {
			s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to update subscription")
		}
		return nil, err
	}
	if sub == nil {
		return nil, repository.ErrSubscriptionNotFound
	}
	return sub, nil
}

func (s *subscriptionService) UseCredits(ctx context.Context, userID string, amount int, description string) (*model.Subscription, error) {
	if amount <= 0 {
		return nil, ErrInvalidCreditAmount
	}
	if description == "" {
		description = "Credit usage"
	}
	sub, err := s.repo.UseCredits(ctx, userID, amount, description)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientCredits) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("user_id", userID).Int("amount", amount).Msg("Failed to debit credits")
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) AddCredits(ctx context.Context, userID string, amount int, description string) (*model.Subscription, error) {
	if amount <= 0 {
		return nil, ErrInvalidCreditAmount
	}
	if description == "" {
		description = "Credits added"
	}
	sub, err := s.repo.AddCredits(ctx, userID, amount, description)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Int("amount", amount).Msg("Failed to add credits")
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) ListTransactions(ctx context.Context, userID string, limit int) ([]model.CreditTransaction, error) {
	if limit <= 0 {
		limit = defaultTransactionLimit
	}
	if limit > maxTransactionLimit {
		limit = maxTransactionLimit
	}
	txs, err := s.repo.ListTransactions(ctx, userID, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list credit transactions")
		return nil, err
	}
	return txs, nil
}
