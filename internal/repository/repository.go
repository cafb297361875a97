package repository

import (
	"context"
	"time"

	"github.com/kofi-dx/NoxManage/internal/domain"
)

type StoreRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	SetSubaccountCode(ctx context.Context, storeID, code string) error
	// ApplyProductPlan stacks the plan's product allowance onto the store's
	// current entitlement in one transaction and activates the subscription.
	ApplyProductPlan(ctx context.Context, storeID string, plan domain.Plan, renewal time.Time) (*domain.Store, error)
	ListExpiredSubscriptions(ctx context.Context, before time.Time) ([]domain.Store, error)
	DeactivateSubscription(ctx context.Context, storeID string) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// ApplyStorePlan replaces the user's store-count entitlement with the
	// plan's value and activates the subscription.
	ApplyStorePlan(ctx context.Context, userID string, plan domain.Plan, renewal time.Time) error
	AppendPaymentEntry(ctx context.Context, userID string, entry domain.PaymentEntry) error
	SetBillingInfo(ctx context.Context, userID string, info domain.BillingInfo) error
	ListExpiredSubscriptions(ctx context.Context, before time.Time) ([]domain.User, error)
	DeactivateSubscription(ctx context.Context, userID string) error
}

type ClientRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) error
}

// ConfirmedOrder bundles everything a confirmed payment writes: the order,
// its client-side mirror, the client upsert, the balance credit and the
// owner's payment-history increment.
type ConfirmedOrder struct {
	StoreID string
	OwnerID string
	Client  domain.Client
	Order   domain.Order
	Mirror  domain.ClientOrder
	Credit  domain.Money
}

type OrderRepository interface {
	// CreateConfirmed applies a ConfirmedOrder in a single transaction keyed
	// by the order id. If the order already exists it returns
	// domain.ErrDuplicateEvent and writes nothing, which makes redelivered
	// charge.success events no-ops.
	CreateConfirmed(ctx context.Context, rec ConfirmedOrder) error
	GetByID(ctx context.Context, storeID, orderID string) (*domain.Order, error)
	// UpdateStatus moves the order and its client mirror together.
	UpdateStatus(ctx context.Context, storeID, orderID string, status domain.OrderStatus) (*domain.Order, error)
	// Delete removes the order and its mirror; a missing mirror is not an
	// error.
	Delete(ctx context.Context, storeID, orderID string) error
}

// LedgerRepository covers the debit side of the balance. Credits happen only
// inside OrderRepository.CreateConfirmed, atomically with the order write.
type LedgerRepository interface {
	GetBalance(ctx context.Context, storeID string) (domain.Money, error)
	// Debit re-reads the balance inside a transaction, returns
	// domain.ErrInsufficientFunds if deduction exceeds it, and otherwise
	// writes the reduced balance, the completed withdrawal record and the
	// owner's payment-history amendment atomically.
	Debit(ctx context.Context, w domain.Withdrawal, deduction domain.Money) error
	RecordFailedWithdrawal(ctx context.Context, w domain.Withdrawal) error
	// HasReference reports whether a withdrawal record already carries the
	// external transfer reference. The audit collection is the dedupe index.
	HasReference(ctx context.Context, storeID, reference string) (bool, error)
	SumWithdrawalsSince(ctx context.Context, storeID string, since time.Time) (domain.Money, error)
}
