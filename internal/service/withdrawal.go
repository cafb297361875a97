package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/logger"
	"github.com/kofi-dx/NoxManage/internal/paystack"
	"github.com/kofi-dx/NoxManage/internal/repository"
)

var momoNumberPattern = regexp.MustCompile(`^\d{10}$`)

const withdrawalWindow = 24 * time.Hour

type withdrawalService struct {
	userRepo      repository.UserRepository
	storeRepo     repository.StoreRepository
	ledgerRepo    repository.LedgerRepository
	gateway       Gateway
	notifications NotificationService
	policy        WithdrawalPolicy
	now           func() time.Time
}

func NewWithdrawalService(
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	ledgerRepo repository.LedgerRepository,
	gateway Gateway,
	notifications NotificationService,
	policy WithdrawalPolicy,
) WithdrawalService {
	return &withdrawalService{
		userRepo:      userRepo,
		storeRepo:     storeRepo,
		ledgerRepo:    ledgerRepo,
		gateway:       gateway,
		notifications: notifications,
		policy:        policy,
		now:           time.Now,
	}
}

func (s *withdrawalService) InitiateWithdrawal(ctx context.Context, userID string, req WithdrawalRequest) (*WithdrawalReceipt, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := s.policy.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}
	if !momoNumberPattern.MatchString(req.MomoNumber) {
		return nil, fmt.Errorf("%w: mobile money number must be exactly 10 digits", domain.ErrValidation)
	}
	if req.MomoProvider == "" {
		return nil, fmt.Errorf("%w: mobile money provider is required", domain.ErrValidation)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !user.OwnsStore(req.StoreID) {
		return nil, domain.ErrForbidden
	}

	balance, err := s.ledgerRepo.GetBalance(ctx, req.StoreID)
	if err != nil {
		return nil, fmt.Errorf("load balance: %w", err)
	}
	tax := s.policy.Tax(req.Amount)
	if req.Amount+tax > balance {
		return nil, domain.ErrInsufficientFunds
	}

	withdrawnToday, err := s.ledgerRepo.SumWithdrawalsSince(ctx, req.StoreID, s.now().Add(-withdrawalWindow))
	if err != nil {
		return nil, fmt.Errorf("sum recent withdrawals: %w", err)
	}
	if err := s.policy.CheckDailyLimit(balance, withdrawnToday, req.Amount); err != nil {
		return nil, err
	}

	firstName, lastName := req.FirstName, req.LastName
	if firstName == "" {
		firstName = user.FirstName
	}
	if lastName == "" {
		lastName = user.LastName
	}
	meta := paystack.TransferMetadata{
		UserID:       userID,
		StoreID:      req.StoreID,
		MomoProvider: req.MomoProvider,
		MomoNumber:   req.MomoNumber,
		FirstName:    firstName,
		LastName:     lastName,
		Tax:          tax.String(),
	}
	recipient, err := s.gateway.CreateTransferRecipient(ctx, paystack.RecipientRequest{
		Type:          "mobile_money",
		Name:          firstName + " " + lastName,
		AccountNumber: req.MomoNumber,
		BankCode:      req.MomoProvider,
		Currency:      "GHS",
		Metadata:      meta,
	})
	if err != nil {
		return nil, err
	}

	// The reference is generated here and echoed back on the completion
	// webhook. Nothing is written to the ledger until that webhook lands.
	reference := uuid.NewString()
	transfer, err := s.gateway.InitiateTransfer(ctx, paystack.TransferRequest{
		Source:    "balance",
		Amount:    req.Amount.MinorUnits(),
		Recipient: recipient.RecipientCode,
		Reason:    "Store withdrawal",
		Reference: reference,
		Metadata:  meta,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Withdrawal initiated",
		"store_id", req.StoreID,
		"amount", req.Amount.String(),
		"reference", reference,
		"transfer_code", transfer.TransferCode)

	return &WithdrawalReceipt{
		Reference:    reference,
		TransferCode: transfer.TransferCode,
		Amount:       req.Amount,
		Tax:          tax,
	}, nil
}

func (s *withdrawalService) CheckWithdrawal(ctx context.Context, userID, storeID string, amount domain.Money) (*WithdrawCheck, error) {
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

	balance, err := s.ledgerRepo.GetBalance(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("load balance: %w", err)
	}
	withdrawnToday, err := s.ledgerRepo.SumWithdrawalsSince(ctx, storeID, s.now().Add(-withdrawalWindow))
	if err != nil {
		return nil, fmt.Errorf("sum recent withdrawals: %w", err)
	}

	limit := s.policy.DailyLimit(balance)
	check := &WithdrawCheck{
		TotalWithdrawnToday: withdrawnToday,
		WithdrawalLimit:     limit,
	}
	if withdrawnToday+amount > limit {
		check.LimitReached = true
		check.Message = "Withdrawal limit reached for today"
	} else {
		check.Message = "Withdrawal within limit"
	}
	return check, nil
}

func (s *withdrawalService) CompleteTransfer(ctx context.Context, transfer *paystack.TransferData) error {
	meta := transfer.Recipient.Metadata
	if meta.UserID == "" || meta.StoreID == "" {
		return fmt.Errorf("%w: transfer metadata is missing user or store", domain.ErrValidation)
	}

	reference := transfer.Reference
	if reference == "" {
		reference = strconv.FormatInt(transfer.ID, 10)
	}

	seen, err := s.ledgerRepo.HasReference(ctx, meta.StoreID, reference)
	if err != nil {
		return fmt.Errorf("check transfer reference: %w", err)
	}
	if seen {
		logger.Info("Duplicate transfer webhook ignored", "reference", reference, "store_id", meta.StoreID)
		return domain.ErrDuplicateEvent
	}

	user, err := s.userRepo.GetByID(ctx, meta.UserID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	store, err := s.storeRepo.GetByID(ctx, meta.StoreID)
	if err != nil {
		return fmt.Errorf("load store: %w", err)
	}

	amount := domain.MoneyFromMinorUnits(transfer.Amount)
	tax, err := domain.ParseMoney(meta.Tax)
	if err != nil || tax == 0 {
		tax = s.policy.Tax(amount)
	}
	deduction := amount + tax

	record := domain.Withdrawal{
		ID:            uuid.NewString(),
		UserID:        meta.UserID,
		StoreID:       meta.StoreID,
		Amount:        amount.String(),
		Tax:           tax.String(),
		MomoProvider:  meta.MomoProvider,
		MomoNumber:    meta.MomoNumber,
		PaymentMethod: "mobile_money",
		Recipient: domain.RecipientDetails{
			Name:          meta.FirstName + " " + meta.LastName,
			AccountNumber: meta.MomoNumber,
			BankCode:      meta.MomoProvider,
		},
		Reference: reference,
		Status:    domain.WithdrawalStatusCompleted,
		CreatedAt: s.now(),
	}

	err = s.ledgerRepo.Debit(ctx, record, deduction)
	if err == domain.ErrInsufficientFunds {
		record.Status = domain.WithdrawalStatusFailed
		record.Reason = "Insufficient store balance"
		if recErr := s.ledgerRepo.RecordFailedWithdrawal(ctx, record); recErr != nil {
			logger.Error("Failed to record failed withdrawal", "reference", reference, "error", recErr)
		}
		s.notifications.WithdrawalFailed(ctx, user, store, amount, record.Reason)
		return domain.ErrInsufficientFunds
	}
	if err != nil {
		return fmt.Errorf("debit store: %w", err)
	}

	logger.Info("Withdrawal settled",
		"store_id", meta.StoreID,
		"amount", amount.String(),
		"tax", tax.String(),
		"reference", reference)
	s.notifications.WithdrawalCompleted(ctx, user, store, amount, tax)
	return nil
}
