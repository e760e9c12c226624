package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"app/internal/api/v1/dto"
	"app/internal/model"
	"app/internal/repository"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// SubscriptionHandler exposes the subscription and credit-ledger endpoints.
type SubscriptionHandler struct {
	subService service.SubscriptionService
	activity   service.ActivityService
	validate   *validator.Validate
	logger     zerolog.Logger
}

func NewSubscriptionHandler(subService service.SubscriptionService, activity service.ActivityService, v *validator.Validate, logger zerolog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subService: subService,
		activity:   activity,
		validate:   v,
		logger:     logger,
	}
}

// RegisterRoutes mounts v1 subscription routes
func (h *SubscriptionHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/users/me/subscription", authMw(http.HandlerFunc(h.handleSubscription)))
	mux.Handle("/users/me/transactions", authMw(http.HandlerFunc(h.listTransactions)))
	mux.Handle("/users/me/credits/use", authMw(http.HandlerFunc(h.useCredits)))
	mux.Handle("/users/me/credits/add", authMw(http.HandlerFunc(h.addCredits)))
}

func (h *SubscriptionHandler) handleSubscription(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getSubscription(w, r)
	case http.MethodPatch:
		h.updateSubscription(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// getSubscription godoc
// @Summary Get the signed-in user's subscription
// @Tags subscriptions
// @Produce json
// @Success 200 {object} dto.SubscriptionResponseDTO
// @Failure 401 {object} handler.ErrorResponse
// @Failure 404 {object} handler.ErrorResponse
// @Router /users/me/subscription [get]
func (h *SubscriptionHandler) getSubscription(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "user id not found in context")
		return
	}

	sub, err := h.subService.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			writeError(w, http.StatusNotFound, "subscription not found")
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch subscription")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toSubscriptionResponse(sub))
}

// updateSubscription godoc
// @Summary Update the signed-in user's plan fields
// @Description Applies only the fields present in the body. Credit counters cannot be changed here.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param subscription body dto.SubscriptionUpdateDTO true "Fields to update"
// @Success 200 {object} dto.SubscriptionResponseDTO
// @Failure 400 {object} handler.ErrorResponse "invalid payload or no fields to update"
// @Failure 401 {object} handler.ErrorResponse
// @Failure 404 {object} handler.ErrorResponse
// @Router /users/me/subscription [patch]
func (h *SubscriptionHandler) updateSubscription(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "user id not found in context")
		return
	}

	var req dto.SubscriptionUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	sub, err := h.subService.Update(r.Context(), userID, req.Fields())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoFieldsToUpdate):
			writeError(w, http.StatusBadRequest, "no fields to update")
		case errors.Is(err, repository.ErrSubscriptionNotFound):
			writeError(w, http.StatusNotFound, "subscription not found")
		default:
			h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to update subscription")
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.activity.Record(r.Context(), service.ActivityEvent{
		UserID:      userID,
		Action:      "subscription_updated",
		Category:    "subscription",
		Description: "Subscription updated",
		Metadata:    req.Fields(),
		IPAddress:   clientIP(r),
		UserAgent:   r.UserAgent(),
	})

	writeJSON(w, http.StatusOK, toSubscriptionResponse(sub))
}

// useCredits godoc
// @Summary Debit credits from the signed-in user's balance
// @Description Fails with 402 and no mutation when the balance is too low.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param request body dto.CreditRequestDTO true "Debit request"
// @Success 200 {object} dto.SubscriptionResponseDTO
// @Failure 400 {object} handler.ErrorResponse
// @Failure 401 {object} handler.ErrorResponse
// @Failure 402 {object} handler.ErrorResponse "insufficient credits"
// @Failure 404 {object} handler.ErrorResponse
// @Router /users/me/credits/use [post]
func (h *SubscriptionHandler) useCredits(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.decodeCreditRequest(w, r)
	if !ok {
		return
	}

	sub, err := h.subService.UseCredits(r.Context(), userID, req.Amount, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientCredits):
			writeError(w, http.StatusPaymentRequired, "insufficient credits")
		case errors.Is(err, service.ErrInvalidCreditAmount):
			writeError(w, http.StatusBadRequest, "credit amount must be positive")
		case errors.Is(err, repository.ErrSubscriptionNotFound):
			writeError(w, http.StatusNotFound, "subscription not found")
		default:
			h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to use credits")
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.activity.Record(r.Context(), service.ActivityEvent{
		UserID:      userID,
		Action:      "credits_used",
		Category:    "credits",
		Description: req.Description,
		Metadata:    map[string]any{"amount": req.Amount, "remaining": sub.CreditsRemaining},
		IPAddress:   clientIP(r),
		UserAgent:   r.UserAgent(),
	})

	writeJSON(w, http.StatusOK, toSubscriptionResponse(sub))
}

// addCredits godoc
// @Summary Add credits to the signed-in user's balance
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param request body dto.CreditRequestDTO true "Top-up request"
// @Success 200 {object} dto.SubscriptionResponseDTO
// @Failure 400 {object} handler.ErrorResponse
// @Failure 401 {object} handler.ErrorResponse
// @Failure 404 {object} handler.ErrorResponse
// @Router /users/me/credits/add [post]
func (h *SubscriptionHandler) addCredits(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.decodeCreditRequest(w, r)
	if !ok {
		return
	}

	sub, err := h.subService.AddCredits(r.Context(), userID, req.Amount, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCreditAmount):
			writeError(w, http.StatusBadRequest, "credit amount must be positive")
		case errors.Is(err, repository.ErrSubscriptionNotFound):
			writeError(w, http.StatusNotFound, "subscription not found")
		default:
			h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to add credits")
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.activity.Record(r.Context(), service.ActivityEvent{
		UserID:      userID,
		Action:      "credits_added",
		Category:    "credits",
		Description: req.Description,
		Metadata:    map[string]any{"amount": req.Amount, "remaining": sub.CreditsRemaining},
		IPAddress:   clientIP(r),
		UserAgent:   r.UserAgent(),
	})

	writeJSON(w, http.StatusOK, toSubscriptionResponse(sub))
}

// listTransactions godoc
// @Summary List the signed-in user's credit transactions, newest first
// @Tags subscriptions
// @Produce json
// @Param limit query int false "Maximum entries to return (default 50)"
// @Success 200 {array} dto.TransactionResponseDTO
// @Failure 401 {object} handler.ErrorResponse
// @Router /users/me/transactions [get]
func (h *SubscriptionHandler) listTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID := userIDFromRequest(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "user id not found in context")
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	txs, err := h.subService.ListTransactions(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list transactions")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]dto.TransactionResponseDTO, 0, len(txs))
	for _, t := range txs {
		resp = append(resp, dto.TransactionResponseDTO{
			ID:              t.ID,
			TransactionType: t.TransactionType,
			Amount:          t.Amount,
			Description:     t.Description,
			Category:        t.Category,
			BalanceBefore:   t.BalanceBefore,
			BalanceAfter:    t.BalanceAfter,
			CreatedAt:       t.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SubscriptionHandler) decodeCreditRequest(w http.ResponseWriter, r *http.Request) (string, dto.CreditRequestDTO, bool) {
	var req dto.CreditRequestDTO
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return "", req, false
	}
	userID := userIDFromRequest(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "user id not found in context")
		return "", req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload: "+err.Error())
		return "", req, false
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return "", req, false
	}
	return userID, req, true
}

func toSubscriptionResponse(s *model.Subscription) dto.SubscriptionResponseDTO {
	return dto.SubscriptionResponseDTO{
		ID:               s.ID,
		UserID:           s.UserID,
		PlanType:         s.PlanType,
		PlanName:         s.PlanName,
		CreditsTotal:     s.CreditsTotal,
		CreditsUsed:      s.CreditsUsed,
		CreditsRemaining: s.CreditsRemaining,
		BillingCycle:     s.BillingCycle,
		Currency:         s.Currency,
		Status:           s.Status,
		StartDate:        s.StartDate,
		EndDate:          s.EndDate,
	}
}
