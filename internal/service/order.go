package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/logger"
	"github.com/kofi-dx/NoxManage/internal/paystack"
	"github.com/kofi-dx/NoxManage/internal/repository"
)

type orderService struct {
	orderRepo     repository.OrderRepository
	storeRepo     repository.StoreRepository
	userRepo      repository.UserRepository
	clientRepo    repository.ClientRepository
	notifications NotificationService
	now           func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	clientRepo repository.ClientRepository,
	notifications NotificationService,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		storeRepo:     storeRepo,
		userRepo:      userRepo,
		clientRepo:    clientRepo,
		notifications: notifications,
		now:           time.Now,
	}
}

func (s *orderService) ReconcileOrderPayment(ctx context.Context, charge *paystack.ChargeData) error {
	md := charge.Metadata
	if md.OrderID == "" || md.StoreID == "" || md.ClientID == "" || len(md.Products) == 0 {
		return fmt.Errorf("%w: charge metadata is missing order context", domain.ErrValidation)
	}

	store, err := s.storeRepo.GetByID(ctx, md.StoreID)
	if err != nil {
		return fmt.Errorf("load store: %w", err)
	}
	owner, err := s.userRepo.GetByID(ctx, store.UserID)
	if err != nil {
		return fmt.Errorf("load store owner: %w", err)
	}

	now := s.now()
	credit := domain.MoneyFromMinorUnits(charge.Amount)

	client := domain.Client{
		ID:              md.ClientID,
		Name:            md.CustomerDetails.Name,
		Email:           md.CustomerDetails.Email,
		Phone:           md.CustomerDetails.Phone,
		Address:         md.CustomerDetails.Address,
		Region:          md.CustomerDetails.Region,
		City:            md.CustomerDetails.City,
		AdditionalNotes: md.CustomerDetails.AdditionalNotes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	items := make([]domain.OrderItem, 0, len(md.Products))
	for _, p := range md.Products {
		items = append(items, domain.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  p.Quantity,
			Image:     p.Image,
		})
	}

	order := domain.Order{
		ID:               md.OrderID,
		StoreID:          md.StoreID,
		ClientID:         md.ClientID,
		ClientName:       client.Name,
		Phone:            client.Phone,
		Address:          client.Address,
		AdditionalNotes:  client.AdditionalNotes,
		Items:            items,
		Amount:           credit.String(),
		IsPaid:           true,
		Status:           domain.OrderStatusPending,
		PaymentReference: charge.Reference,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	mirror := domain.ClientOrder{
		ID:      md.OrderID,
		StoreID: md.StoreID,
		Store: domain.StoreSnapshot{
			Name:     store.Name,
			Location: store.Location,
			Phone:    store.Phone,
		},
		Items:            items,
		Amount:           credit.String(),
		IsPaid:           true,
		Status:           domain.OrderStatusPending,
		PaymentReference: charge.Reference,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = s.orderRepo.CreateConfirmed(ctx, repository.ConfirmedOrder{
		StoreID: md.StoreID,
		OwnerID: store.UserID,
		Client:  client,
		Order:   order,
		Mirror:  mirror,
		Credit:  credit,
	})
	if errors.Is(err, domain.ErrDuplicateEvent) {
		logger.Info("Duplicate order payment ignored", "order_id", md.OrderID, "reference", charge.Reference)
		return err
	}
	if err != nil {
		return fmt.Errorf("confirm order %s: %w", md.OrderID, err)
	}

	logger.Info("Order payment reconciled",
		"order_id", md.OrderID,
		"store_id", md.StoreID,
		"amount", credit.String())
	s.notifications.OrderConfirmed(ctx, owner, &client, &order)
	return nil
}

func (s *orderService) HandlePaymentFailure(ctx context.Context, charge *paystack.ChargeData) error {
	if charge.Metadata.StoreID == "" {
		logger.Warn("Payment failure without store context", "reference", charge.Reference)
		return nil
	}
	store, err := s.storeRepo.GetByID(ctx, charge.Metadata.StoreID)
	if err != nil {
		return fmt.Errorf("load store: %w", err)
	}
	owner, err := s.userRepo.GetByID(ctx, store.UserID)
	if err != nil {
		return fmt.Errorf("load store owner: %w", err)
	}
	s.notifications.OrderFailed(ctx, owner, domain.MoneyFromMinorUnits(charge.Amount), charge.Reference)
	return nil
}

func (s *orderService) UpdateStatus(ctx context.Context, userID, storeID, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !user.OwnsStore(storeID) {
		return nil, domain.ErrForbidden
	}

	current, err := s.orderRepo.GetByID(ctx, storeID, orderID)
	if err != nil {
		return nil, err
	}
	if !domain.ValidOrderTransition(current.Status, status) {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", domain.ErrValidation, current.Status, status)
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, storeID, orderID, status)
	if err != nil {
		return nil, err
	}

	if status == domain.OrderStatusDelivering || status == domain.OrderStatusDelivered {
		client, err := s.clientRepo.GetByID(ctx, updated.ClientID)
		if err != nil {
			logger.Warn("Client lookup failed for delivery notice", "client_id", updated.ClientID, "error", err)
		} else {
			s.notifications.DeliveryUpdate(ctx, client, updated)
		}
	}
	return updated, nil
}

func (s *orderService) Delete(ctx context.Context, userID, storeID, orderID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if !user.OwnsStore(storeID) {
		return domain.ErrForbidden
	}
	return s.orderRepo.Delete(ctx, storeID, orderID)
}
