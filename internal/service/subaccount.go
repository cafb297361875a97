package service

import (
	"context"
	"fmt"

	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/logger"
	"github.com/kofi-dx/NoxManage/internal/paystack"
	"github.com/kofi-dx/NoxManage/internal/repository"
)

// platformSharePct is the percentage of each split payment retained by the
// platform when a subaccount settles an order.
const platformSharePct = 10

type subaccountService struct {
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
	gateway   Gateway
}

func NewSubaccountService(userRepo repository.UserRepository, storeRepo repository.StoreRepository, gateway Gateway) SubaccountService {
	return &subaccountService{userRepo: userRepo, storeRepo: storeRepo, gateway: gateway}
}

func (s *subaccountService) CreateSubaccount(ctx context.Context, userID string, req SubaccountRequest) (string, error) {
	if userID == "" {
		return "", domain.ErrUnauthenticated
	}
	if req.BusinessName == "" || req.AccountNumber == "" || req.BankCode == "" {
		return "", fmt.Errorf("%w: business name, account number and bank code are required", domain.ErrValidation)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}
	if !user.OwnsStore(req.StoreID) {
		return "", domain.ErrForbidden
	}

	result, err := s.gateway.CreateSubaccount(ctx, paystack.SubaccountRequest{
		BusinessName:        req.BusinessName,
		AccountNumber:       req.AccountNumber,
		BankCode:            req.BankCode,
		PercentageCharge:    platformSharePct,
		PrimaryContactEmail: user.Email,
	})
	if err != nil {
		return "", err
	}

	if err := s.storeRepo.SetSubaccountCode(ctx, req.StoreID, result.SubaccountCode); err != nil {
		return "", fmt.Errorf("save subaccount code: %w", err)
	}
	if err := s.userRepo.SetBillingInfo(ctx, userID, domain.BillingInfo{
		Name:            req.BusinessName,
		SubaccountCode:  result.SubaccountCode,
		PaymentProvider: req.Provider,
	}); err != nil {
		return "", fmt.Errorf("save billing info: %w", err)
	}

	logger.Info("Subaccount created", "store_id", req.StoreID, "subaccount_code", result.SubaccountCode)
	return result.SubaccountCode, nil
}
