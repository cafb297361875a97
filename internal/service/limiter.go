package service

import (
	"fmt"

	"github.com/kofi-dx/NoxManage/internal/domain"
)

// WithdrawalPolicy holds the payout rules: a hard per-transfer cap, the
// platform fee charged on top of every payout, and the share of the balance
// that may leave a store in any rolling 24-hour window.
type WithdrawalPolicy struct {
	MaxTransfer    domain.Money
	PlatformFeePct int64
	DailyLimitPct  int64
}

// Tax is the platform fee for a payout of amount. It is charged in addition
// to the amount, so the ledger deduction is amount + Tax(amount).
func (p WithdrawalPolicy) Tax(amount domain.Money) domain.Money {
	return amount.Percent(p.PlatformFeePct)
}

// DailyLimit is the most that may be withdrawn from a store in a rolling
// 24-hour window, derived from the current balance.
func (p WithdrawalPolicy) DailyLimit(balance domain.Money) domain.Money {
	return balance.Percent(p.DailyLimitPct)
}

// ValidateAmount rejects non-positive amounts and amounts over the hard cap.
func (p WithdrawalPolicy) ValidateAmount(amount domain.Money) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if amount > p.MaxTransfer {
		return fmt.Errorf("%w: amount exceeds the maximum transfer of %s", domain.ErrValidation, p.MaxTransfer)
	}
	return nil
}

// CheckDailyLimit rejects a withdrawal that would push the rolling 24-hour
// total past the limit.
func (p WithdrawalPolicy) CheckDailyLimit(balance, withdrawnToday, amount domain.Money) error {
	if withdrawnToday+amount > p.DailyLimit(balance) {
		return domain.ErrLimitExceeded
	}
	return nil
}
