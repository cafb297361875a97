package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/paystack"
	"github.com/kofi-dx/NoxManage/internal/repository"
)

type MockStoreRepo struct{ mock.Mock }

func (m *MockStoreRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*domain.Store), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStoreRepo) SetSubaccountCode(ctx context.Context, storeID, code string) error {
	return m.Called(ctx, storeID, code).Error(0)
}

func (m *MockStoreRepo) ApplyProductPlan(ctx context.Context, storeID string, plan domain.Plan, renewal time.Time) (*domain.Store, error) {
	args := m.Called(ctx, storeID, plan, renewal)
	if s := args.Get(0); s != nil {
		return s.(*domain.Store), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStoreRepo) ListExpiredSubscriptions(ctx context.Context, before time.Time) ([]domain.Store, error) {
	args := m.Called(ctx, before)
	if s := args.Get(0); s != nil {
		return s.([]domain.Store), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStoreRepo) DeactivateSubscription(ctx context.Context, storeID string) error {
	return m.Called(ctx, storeID).Error(0)
}

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) ApplyStorePlan(ctx context.Context, userID string, plan domain.Plan, renewal time.Time) error {
	return m.Called(ctx, userID, plan, renewal).Error(0)
}

func (m *MockUserRepo) AppendPaymentEntry(ctx context.Context, userID string, entry domain.PaymentEntry) error {
	return m.Called(ctx, userID, entry).Error(0)
}

func (m *MockUserRepo) SetBillingInfo(ctx context.Context, userID string, info domain.BillingInfo) error {
	return m.Called(ctx, userID, info).Error(0)
}

func (m *MockUserRepo) ListExpiredSubscriptions(ctx context.Context, before time.Time) ([]domain.User, error) {
	args := m.Called(ctx, before)
	if u := args.Get(0); u != nil {
		return u.([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) DeactivateSubscription(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockClientRepo struct{ mock.Mock }

func (m *MockClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Client), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClientRepo) Create(ctx context.Context, c *domain.Client) error {
	return m.Called(ctx, c).Error(0)
}

type MockOrderRepo struct{ mock.Mock }

func (m *MockOrderRepo) CreateConfirmed(ctx context.Context, rec repository.ConfirmedOrder) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockOrderRepo) GetByID(ctx context.Context, storeID, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, storeID, orderID)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, storeID, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	args := m.Called(ctx, storeID, orderID, status)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepo) Delete(ctx context.Context, storeID, orderID string) error {
	return m.Called(ctx, storeID, orderID).Error(0)
}

type MockLedgerRepo struct{ mock.Mock }

func (m *MockLedgerRepo) GetBalance(ctx context.Context, storeID string) (domain.Money, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(domain.Money), args.Error(1)
}

func (m *MockLedgerRepo) Debit(ctx context.Context, w domain.Withdrawal, deduction domain.Money) error {
	return m.Called(ctx, w, deduction).Error(0)
}

func (m *MockLedgerRepo) RecordFailedWithdrawal(ctx context.Context, w domain.Withdrawal) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockLedgerRepo) HasReference(ctx context.Context, storeID, reference string) (bool, error) {
	args := m.Called(ctx, storeID, reference)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepo) SumWithdrawalsSince(ctx context.Context, storeID string, since time.Time) (domain.Money, error) {
	args := m.Called(ctx, storeID, since)
	return args.Get(0).(domain.Money), args.Error(1)
}

type MockGateway struct{ mock.Mock }

func (m *MockGateway) InitializeTransaction(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeResult, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*paystack.InitializeResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) VerifyTransaction(ctx context.Context, reference string) (*paystack.VerifyResult, error) {
	args := m.Called(ctx, reference)
	if r := args.Get(0); r != nil {
		return r.(*paystack.VerifyResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) CreateSubaccount(ctx context.Context, req paystack.SubaccountRequest) (*paystack.SubaccountResult, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*paystack.SubaccountResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) CreateTransferRecipient(ctx context.Context, req paystack.RecipientRequest) (*paystack.RecipientResult, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*paystack.RecipientResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) InitiateTransfer(ctx context.Context, req paystack.TransferRequest) (*paystack.TransferResult, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*paystack.TransferResult), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockNotifications records notification fan-out without delivering anything.
type MockNotifications struct{ mock.Mock }

func (m *MockNotifications) OrderConfirmed(ctx context.Context, owner *domain.User, client *domain.Client, order *domain.Order) {
	m.Called(ctx, owner, client, order)
}

func (m *MockNotifications) OrderFailed(ctx context.Context, owner *domain.User, amount domain.Money, reference string) {
	m.Called(ctx, owner, amount, reference)
}

func (m *MockNotifications) DeliveryUpdate(ctx context.Context, client *domain.Client, order *domain.Order) {
	m.Called(ctx, client, order)
}

func (m *MockNotifications) SubscriptionActivated(ctx context.Context, email, name, planName string) {
	m.Called(ctx, email, name, planName)
}

func (m *MockNotifications) SubscriptionFailed(ctx context.Context, email, reference string) {
	m.Called(ctx, email, reference)
}

func (m *MockNotifications) WithdrawalCompleted(ctx context.Context, owner *domain.User, store *domain.Store, amount, tax domain.Money) {
	m.Called(ctx, owner, store, amount, tax)
}

func (m *MockNotifications) WithdrawalFailed(ctx context.Context, owner *domain.User, store *domain.Store, amount domain.Money, reason string) {
	m.Called(ctx, owner, store, amount, reason)
}
