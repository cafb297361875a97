package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kofi-dx/NoxManage/internal/domain"
)

func testPolicy() WithdrawalPolicy {
	return WithdrawalPolicy{
		MaxTransfer:    domain.MustParseMoney("2000.00"),
		PlatformFeePct: 6,
		DailyLimitPct:  60,
	}
}

func TestWithdrawalPolicy_Tax(t *testing.T) {
	policy := testPolicy()
	assert.Equal(t, domain.MustParseMoney("12.00"), policy.Tax(domain.MustParseMoney("200.00")))
	assert.Equal(t, domain.MustParseMoney("5.40"), policy.Tax(domain.MustParseMoney("90.00")))
}

func TestWithdrawalPolicy_ValidateAmount(t *testing.T) {
	policy := testPolicy()

	t.Run("positive amount within cap", func(t *testing.T) {
		assert.NoError(t, policy.ValidateAmount(domain.MustParseMoney("200.00")))
		assert.NoError(t, policy.ValidateAmount(domain.MustParseMoney("2000.00")))
	})

	t.Run("zero and negative rejected", func(t *testing.T) {
		assert.ErrorIs(t, policy.ValidateAmount(0), domain.ErrValidation)
		assert.ErrorIs(t, policy.ValidateAmount(domain.MustParseMoney("-5.00")), domain.ErrValidation)
	})

	t.Run("over the cap rejected", func(t *testing.T) {
		assert.ErrorIs(t, policy.ValidateAmount(domain.MustParseMoney("2000.01")), domain.ErrValidation)
	})
}

func TestWithdrawalPolicy_CheckDailyLimit(t *testing.T) {
	policy := testPolicy()

	t.Run("within limit", func(t *testing.T) {
		// Balance 1000.00: limit is 600.00, a 200.00 request fits.
		err := policy.CheckDailyLimit(domain.MustParseMoney("1000.00"), 0, domain.MustParseMoney("200.00"))
		assert.NoError(t, err)
	})

	t.Run("single request over the limit", func(t *testing.T) {
		// Balance 100.00: limit is 60.00, a 90.00 request exceeds it even
		// though the balance itself could cover the deduction.
		err := policy.CheckDailyLimit(domain.MustParseMoney("100.00"), 0, domain.MustParseMoney("90.00"))
		assert.ErrorIs(t, err, domain.ErrLimitExceeded)
	})

	t.Run("rolling window accumulates", func(t *testing.T) {
		balance := domain.MustParseMoney("1000.00")
		withdrawn := domain.MustParseMoney("500.00")
		assert.NoError(t, policy.CheckDailyLimit(balance, withdrawn, domain.MustParseMoney("100.00")))
		assert.ErrorIs(t,
			policy.CheckDailyLimit(balance, withdrawn, domain.MustParseMoney("100.01")),
			domain.ErrLimitExceeded)
	})
}
