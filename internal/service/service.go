package service

import (
	"context"

	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/paystack"
)

// Gateway is the slice of the payment provider API the services depend on.
// *paystack.Client satisfies it; tests substitute a mock.
type Gateway interface {
	InitializeTransaction(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeResult, error)
	VerifyTransaction(ctx context.Context, reference string) (*paystack.VerifyResult, error)
	CreateSubaccount(ctx context.Context, req paystack.SubaccountRequest) (*paystack.SubaccountResult, error)
	CreateTransferRecipient(ctx context.Context, req paystack.RecipientRequest) (*paystack.RecipientResult, error)
	InitiateTransfer(ctx context.Context, req paystack.TransferRequest) (*paystack.TransferResult, error)
}

// Notifier delivers messages to people. Delivery is best effort: reconcilers
// log notifier failures and keep going, since ledger state has already moved.
type Notifier interface {
	SendSMS(ctx context.Context, phone, message string) error
	SendEmail(ctx context.Context, to, subject, body string) error
}

type LedgerService interface {
	GetBalance(ctx context.Context, userID, storeID string) (domain.Money, error)
}

// WithdrawalRequest is the payout ask as it arrives from the owner. The name
// fields are optional; the recipient name falls back to the user record.
type WithdrawalRequest struct {
	StoreID      string
	Amount       domain.Money
	MomoProvider string
	MomoNumber   string
	FirstName    string
	LastName     string
}

// WithdrawalReceipt reports an accepted payout request. The ledger is not
// touched yet; settlement happens when the transfer webhook lands.
type WithdrawalReceipt struct {
	Reference    string       `json:"reference"`
	TransferCode string       `json:"transfer_code"`
	Amount       domain.Money `json:"amount"`
	Tax          domain.Money `json:"tax"`
}

// WithdrawCheck is the dry-run answer for the withdrawal form.
type WithdrawCheck struct {
	Message             string       `json:"message"`
	LimitReached        bool         `json:"limitReached"`
	TotalWithdrawnToday domain.Money `json:"totalWithdrawnToday"`
	WithdrawalLimit     domain.Money `json:"withdrawalLimit"`
}

type WithdrawalService interface {
	InitiateWithdrawal(ctx context.Context, userID string, req WithdrawalRequest) (*WithdrawalReceipt, error)
	CheckWithdrawal(ctx context.Context, userID, storeID string, amount domain.Money) (*WithdrawCheck, error)
	// CompleteTransfer settles a transfer.success webhook: dedupe by
	// reference, then debit or record the failure.
	CompleteTransfer(ctx context.Context, transfer *paystack.TransferData) error
}

type OrderService interface {
	// ReconcileOrderPayment materializes the order, mirrors it to the client
	// and credits the store, all keyed by the gateway order id.
	ReconcileOrderPayment(ctx context.Context, charge *paystack.ChargeData) error
	// HandlePaymentFailure notifies the store owner. No ledger movement.
	HandlePaymentFailure(ctx context.Context, charge *paystack.ChargeData) error
	UpdateStatus(ctx context.Context, userID, storeID, orderID string, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, userID, storeID, orderID string) error
}

// CheckoutItem is one line of a buyer's cart.
type CheckoutItem struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"` // minor units
	Quantity  int64  `json:"quantity"`
	Image     string `json:"image"`
}

type CheckoutRequest struct {
	ClientID        string                 `json:"clientId"`
	Items           []CheckoutItem         `json:"products"`
	CustomerDetails domain.CustomerDetails `json:"customerDetails"`
	CallbackURL     string                 `json:"callbackUrl"`
}

type CheckoutService interface {
	// Checkout opens a hosted payment session. No order document exists until
	// the gateway confirms payment.
	Checkout(ctx context.Context, storeID string, req CheckoutRequest) (*paystack.InitializeResult, error)
}

type SubscriptionService interface {
	// ReconcileProductPlan applies a plan-coded charge to the store named in
	// the metadata, stacking the product allowance.
	ReconcileProductPlan(ctx context.Context, charge *paystack.ChargeData) error
	// ReconcileStorePlan applies a plain charge to the paying user's
	// store-count entitlement, replacing the previous plan.
	ReconcileStorePlan(ctx context.Context, charge *paystack.ChargeData) error
	InitializePlan(ctx context.Context, userID, email, planCode, storeID string) (*paystack.InitializeResult, error)
	// SweepExpired deactivates subscriptions whose renewal date has passed.
	SweepExpired(ctx context.Context) error
}

// NotificationService formats and fans out the people-facing messages the
// payment flows produce. All methods are best effort: failures are logged,
// never returned, because the ledger has already moved by the time they run.
type NotificationService interface {
	OrderConfirmed(ctx context.Context, owner *domain.User, client *domain.Client, order *domain.Order)
	OrderFailed(ctx context.Context, owner *domain.User, amount domain.Money, reference string)
	DeliveryUpdate(ctx context.Context, client *domain.Client, order *domain.Order)
	SubscriptionActivated(ctx context.Context, email, name, planName string)
	SubscriptionFailed(ctx context.Context, email, reference string)
	WithdrawalCompleted(ctx context.Context, owner *domain.User, store *domain.Store, amount, tax domain.Money)
	WithdrawalFailed(ctx context.Context, owner *domain.User, store *domain.Store, amount domain.Money, reason string)
}

type SubaccountRequest struct {
	StoreID       string `json:"storeId"`
	BusinessName  string `json:"businessName"`
	AccountNumber string `json:"accountNumber"`
	BankCode      string `json:"bankCode"`
	Provider      string `json:"provider"`
}

type SubaccountService interface {
	CreateSubaccount(ctx context.Context, userID string, req SubaccountRequest) (string, error)
}
