package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/logger"
	"github.com/kofi-dx/NoxManage/internal/paystack"
	"github.com/kofi-dx/NoxManage/internal/repository"
)

type checkoutService struct {
	storeRepo repository.StoreRepository
	gateway   Gateway
}

func NewCheckoutService(storeRepo repository.StoreRepository, gateway Gateway) CheckoutService {
	return &checkoutService{storeRepo: storeRepo, gateway: gateway}
}

func (s *checkoutService) Checkout(ctx context.Context, storeID string, req CheckoutRequest) (*paystack.InitializeResult, error) {
	if req.ClientID == "" {
		return nil, fmt.Errorf("%w: client id is required", domain.ErrValidation)
	}
	if req.CustomerDetails.Email == "" {
		return nil, fmt.Errorf("%w: customer email is required", domain.ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrValidation)
	}

	var total int64
	products := make([]paystack.ProductMeta, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 || item.Price < 0 {
			return nil, fmt.Errorf("%w: invalid quantity or price for product %s", domain.ErrValidation, item.ProductID)
		}
		total += item.Price * item.Quantity
		products = append(products, paystack.ProductMeta{
			ID:       item.ProductID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Image:    item.Image,
		})
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: order total must be positive", domain.ErrValidation)
	}

	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}
	if store.SubaccountCode == "" {
		return nil, fmt.Errorf("%w: store has no payout account", domain.ErrValidation)
	}

	// The order id is minted here and travels through the gateway metadata.
	// No order document exists until charge.success comes back with it.
	orderID := uuid.NewString()
	result, err := s.gateway.InitializeTransaction(ctx, paystack.InitializeRequest{
		Email:       req.CustomerDetails.Email,
		Amount:      total,
		Subaccount:  store.SubaccountCode,
		CallbackURL: req.CallbackURL,
		Metadata: &paystack.ChargeMetadata{
			OrderID:         orderID,
			ClientID:        req.ClientID,
			StoreID:         storeID,
			Products:        products,
			CustomerDetails: req.CustomerDetails,
		},
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Checkout session opened",
		"store_id", storeID,
		"order_id", orderID,
		"amount", domain.MoneyFromMinorUnits(total).String(),
		"reference", result.Reference)
	return result, nil
}
