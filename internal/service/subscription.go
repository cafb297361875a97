package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/logger"
	"github.com/kofi-dx/NoxManage/internal/paystack"
	"github.com/kofi-dx/NoxManage/internal/repository"
)

const (
	verifyAttempts = 3
	verifyInterval = 5 * time.Second
)

type subscriptionService struct {
	storeRepo     repository.StoreRepository
	userRepo      repository.UserRepository
	gateway       Gateway
	catalog       *domain.PlanCatalog
	notifications NotificationService

	// retryInterval is the pause between verification attempts; tests shrink it.
	retryInterval time.Duration
	now           func() time.Time
}

func NewSubscriptionService(
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	gateway Gateway,
	catalog *domain.PlanCatalog,
	notifications NotificationService,
) SubscriptionService {
	return &subscriptionService{
		storeRepo:     storeRepo,
		userRepo:      userRepo,
		gateway:       gateway,
		catalog:       catalog,
		notifications: notifications,
		retryInterval: verifyInterval,
		now:           time.Now,
	}
}

// verify confirms the charge with the gateway before any entitlement moves.
// Any answer short of "success" is retried across the attempts: charges often
// verify as "pending" right after the webhook lands and settle moments later.
func (s *subscriptionService) verify(ctx context.Context, reference string) error {
	var lastErr error
	for attempt := 1; attempt <= verifyAttempts; attempt++ {
		result, err := s.gateway.VerifyTransaction(ctx, reference)
		switch {
		case err == nil && result.Succeeded():
			return nil
		case err == nil:
			lastErr = fmt.Errorf("%w: transaction %s is %q", domain.ErrValidation, reference, result.Status)
			logger.Warn("Transaction not yet confirmed",
				"reference", reference,
				"attempt", attempt,
				"status", result.Status)
		default:
			lastErr = err
			logger.Warn("Transaction verification attempt failed",
				"reference", reference,
				"attempt", attempt,
				"error", err)
		}
		if attempt < verifyAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.retryInterval):
			}
		}
	}
	if domain.IsGatewayError(lastErr) {
		return fmt.Errorf("verify transaction %s: %w", reference, lastErr)
	}
	return lastErr
}

func (s *subscriptionService) ReconcileProductPlan(ctx context.Context, charge *paystack.ChargeData) error {
	plan, ok := s.catalog.ByCode(charge.Plan.PlanCode)
	if !ok {
		return fmt.Errorf("%w: unknown plan code %q", domain.ErrValidation, charge.Plan.PlanCode)
	}

	if err := s.verify(ctx, charge.Reference); err != nil {
		s.notifications.SubscriptionFailed(ctx, charge.Customer.Email, charge.Reference)
		return err
	}

	// Store plans can also arrive plan-coded when initialized through the
	// hosted flow; route them by kind.
	if plan.Kind == domain.PlanKindStore {
		return s.applyStorePlan(ctx, charge, plan)
	}

	storeID := charge.Metadata.StoreID
	if storeID == "" {
		return fmt.Errorf("%w: plan charge is missing store context", domain.ErrValidation)
	}
	renewal := s.now().AddDate(0, 1, 0)
	store, err := s.storeRepo.ApplyProductPlan(ctx, storeID, plan, renewal)
	if err != nil {
		return fmt.Errorf("apply product plan: %w", err)
	}

	owner, err := s.userRepo.GetByID(ctx, store.UserID)
	if err != nil {
		return fmt.Errorf("load store owner: %w", err)
	}
	s.recordPayment(ctx, owner.ID, storeID, plan, charge)

	logger.Info("Product plan activated",
		"store_id", storeID,
		"plan", plan.Name,
		"allowed_products", store.Subscription.AllowedProduct)
	s.notifications.SubscriptionActivated(ctx, owner.Email, owner.FirstName, plan.Name)
	return nil
}

func (s *subscriptionService) ReconcileStorePlan(ctx context.Context, charge *paystack.ChargeData) error {
	if err := s.verify(ctx, charge.Reference); err != nil {
		s.notifications.SubscriptionFailed(ctx, charge.Customer.Email, charge.Reference)
		return err
	}
	plan, ok := s.catalog.StorePlanByPrice(domain.MoneyFromMinorUnits(charge.Amount))
	if !ok {
		return fmt.Errorf("%w: no store plan priced at %s", domain.ErrValidation, domain.MoneyFromMinorUnits(charge.Amount))
	}
	return s.applyStorePlan(ctx, charge, plan)
}

func (s *subscriptionService) applyStorePlan(ctx context.Context, charge *paystack.ChargeData, plan domain.Plan) error {
	user, err := s.userRepo.GetByEmail(ctx, charge.Customer.Email)
	if err != nil {
		return fmt.Errorf("load user by email: %w", err)
	}
	renewal := s.now().AddDate(0, 1, 0)
	if err := s.userRepo.ApplyStorePlan(ctx, user.ID, plan, renewal); err != nil {
		return fmt.Errorf("apply store plan: %w", err)
	}
	s.recordPayment(ctx, user.ID, "", plan, charge)

	logger.Info("Store plan activated",
		"user_id", user.ID,
		"plan", plan.Name,
		"allowed_stores", plan.Entitlement)
	s.notifications.SubscriptionActivated(ctx, user.Email, user.FirstName, plan.Name)
	return nil
}

func (s *subscriptionService) recordPayment(ctx context.Context, userID, storeID string, plan domain.Plan, charge *paystack.ChargeData) {
	now := s.now()
	entry := domain.PaymentEntry{
		ID:            uuid.NewString(),
		UserID:        userID,
		StoreID:       storeID,
		PaymentMethod: "paystack",
		Provider:      "paystack",
		Amount:        charge.Amount,
		Status:        "success",
		TransactionID: charge.Reference,
		PaymentDetails: map[string]string{
			"plan": plan.Name,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.AppendPaymentEntry(ctx, userID, entry); err != nil {
		logger.Error("Failed to record subscription payment", "user_id", userID, "error", err)
	}
}

func (s *subscriptionService) InitializePlan(ctx context.Context, userID, email, planCode, storeID string) (*paystack.InitializeResult, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	plan, ok := s.catalog.ByCode(planCode)
	if !ok {
		return nil, fmt.Errorf("%w: unknown plan code %q", domain.ErrValidation, planCode)
	}
	if plan.Kind == domain.PlanKindProduct && storeID == "" {
		return nil, fmt.Errorf("%w: product plans require a store", domain.ErrValidation)
	}

	req := paystack.InitializeRequest{
		Email:  email,
		Amount: plan.Price.MinorUnits(),
		Plan:   plan.Code,
	}
	if plan.Kind == domain.PlanKindProduct {
		req.Metadata = &paystack.ChargeMetadata{StoreID: storeID}
	}
	result, err := s.gateway.InitializeTransaction(ctx, req)
	if err != nil {
		return nil, err
	}
	logger.Info("Plan payment initialized", "plan", plan.Name, "user_id", userID, "reference", result.Reference)
	return result, nil
}

func (s *subscriptionService) SweepExpired(ctx context.Context) error {
	now := s.now()

	stores, err := s.storeRepo.ListExpiredSubscriptions(ctx, now)
	if err != nil {
		return fmt.Errorf("list expired store subscriptions: %w", err)
	}
	for _, store := range stores {
		if err := s.storeRepo.DeactivateSubscription(ctx, store.ID); err != nil {
			logger.Error("Failed to deactivate store subscription", "store_id", store.ID, "error", err)
			continue
		}
		logger.Info("Store subscription expired", "store_id", store.ID, "plan", store.Subscription.PlanID)
	}

	users, err := s.userRepo.ListExpiredSubscriptions(ctx, now)
	if err != nil {
		return fmt.Errorf("list expired user subscriptions: %w", err)
	}
	for _, user := range users {
		if err := s.userRepo.DeactivateSubscription(ctx, user.ID); err != nil {
			logger.Error("Failed to deactivate user subscription", "user_id", user.ID, "error", err)
			continue
		}
		logger.Info("User subscription expired", "user_id", user.ID, "plan", user.Subscription.PlanID)
	}
	return nil
}
