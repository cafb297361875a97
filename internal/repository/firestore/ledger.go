package firestore

import (
	"context"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/repository"
)

type ledgerRepository struct {
	client *fs.Client
}

func NewLedgerRepository(client *fs.Client) repository.LedgerRepository {
	return &ledgerRepository{client: client}
}

func (r *ledgerRepository) withdrawals(storeID string) *fs.CollectionRef {
	return r.client.Collection(collStores).Doc(storeID).Collection(collWithdrawals)
}

func (r *ledgerRepository) GetBalance(ctx context.Context, storeID string) (domain.Money, error) {
	snap, err := r.client.Collection(collStores).Doc(storeID).Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("get store %s: %w", storeID, err)
	}
	var store domain.Store
	if err := snap.DataTo(&store); err != nil {
		return 0, fmt.Errorf("decode store %s: %w", storeID, err)
	}
	return store.Balance()
}

func (r *ledgerRepository) Debit(ctx context.Context, w domain.Withdrawal, deduction domain.Money) error {
	storeRef := r.client.Collection(collStores).Doc(w.StoreID)
	userRef := r.client.Collection(collUsers).Doc(w.UserID)
	recordRef := r.withdrawals(w.StoreID).Doc(w.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *fs.Transaction) error {
		storeSnap, err := tx.Get(storeRef)
		if err != nil {
			if storeSnap != nil && !storeSnap.Exists() {
				return domain.ErrNotFound
			}
			return err
		}
		var store domain.Store
		if err := storeSnap.DataTo(&store); err != nil {
			return err
		}
		balance, err := store.Balance()
		if err != nil {
			return err
		}
		if deduction > balance {
			return domain.ErrInsufficientFunds
		}

		userSnap, err := tx.Get(userRef)
		if err != nil {
			if userSnap != nil && !userSnap.Exists() {
				return domain.ErrNotFound
			}
			return err
		}
		var owner domain.User
		if err := userSnap.DataTo(&owner); err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Update(storeRef, []fs.Update{
			{Path: "amount", Value: (balance - deduction).String()},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}
		if err := tx.Set(recordRef, w); err != nil {
			return err
		}

		// The payout reverses part of the running per-store aggregate on the
		// owner's payment history.
		history := owner.PaymentHistory
		for i := len(history) - 1; i >= 0; i-- {
			if history[i].StoreID == w.StoreID {
				history[i].Amount -= deduction.MinorUnits()
				history[i].UpdatedAt = now
				break
			}
		}
		return tx.Update(userRef, []fs.Update{
			{Path: "paymentHistory", Value: history},
			{Path: "updatedAt", Value: now},
		})
	})
	switch err {
	case nil, domain.ErrNotFound, domain.ErrInsufficientFunds:
		return err
	default:
		return fmt.Errorf("debit store %s: %w", w.StoreID, err)
	}
}

func (r *ledgerRepository) RecordFailedWithdrawal(ctx context.Context, w domain.Withdrawal) error {
	if _, err := r.withdrawals(w.StoreID).Doc(w.ID).Set(ctx, w); err != nil {
		return fmt.Errorf("record failed withdrawal %s: %w", w.ID, err)
	}
	return nil
}

func (r *ledgerRepository) HasReference(ctx context.Context, storeID, reference string) (bool, error) {
	it := r.withdrawals(storeID).
		Where("reference", "==", reference).
		Limit(1).
		Documents(ctx)
	defer it.Stop()

	_, err := it.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check withdrawal reference: %w", err)
	}
	return true, nil
}

func (r *ledgerRepository) SumWithdrawalsSince(ctx context.Context, storeID string, since time.Time) (domain.Money, error) {
	// Status is filtered in code; a compound query here would need a
	// composite index per deployment.
	it := r.withdrawals(storeID).
		Where("createdAt", ">=", since).
		Documents(ctx)
	defer it.Stop()

	var total domain.Money
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("sum withdrawals for store %s: %w", storeID, err)
		}
		var w domain.Withdrawal
		if err := snap.DataTo(&w); err != nil {
			return 0, fmt.Errorf("decode withdrawal %s: %w", snap.Ref.ID, err)
		}
		if w.Status != domain.WithdrawalStatusCompleted {
			continue
		}
		amount, err := domain.ParseMoney(w.Amount)
		if err != nil {
			return 0, fmt.Errorf("withdrawal %s amount: %w", snap.Ref.ID, err)
		}
		total += amount
	}
	return total, nil
}
