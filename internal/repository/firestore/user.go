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

type userRepository struct {
	client *fs.Client
}

func NewUserRepository(client *fs.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	snap, err := r.client.Collection(collUsers).Doc(id).Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	var user domain.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	user.ID = snap.Ref.ID
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	it := r.client.Collection(collUsers).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer it.Stop()

	snap, err := it.Next()
	if err == iterator.Done {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	var user domain.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", snap.Ref.ID, err)
	}
	user.ID = snap.Ref.ID
	return &user, nil
}

func (r *userRepository) ApplyStorePlan(ctx context.Context, userID string, plan domain.Plan, renewal time.Time) error {
	ref := r.client.Collection(collUsers).Doc(userID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *fs.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if snap != nil && !snap.Exists() {
				return domain.ErrNotFound
			}
			return err
		}
		// Store plans replace the entitlement rather than stack it.
		sub := domain.UserSubscription{
			IsActive:      true,
			AllowedStores: plan.Entitlement,
			PlanID:        plan.Code,
			Price:         plan.Price.MinorUnits(),
			RenewalDate:   renewal,
		}
		return tx.Update(ref, []fs.Update{
			{Path: "subscription", Value: sub},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
	if err != nil {
		if err == domain.ErrNotFound {
			return err
		}
		return fmt.Errorf("apply store plan to user %s: %w", userID, err)
	}
	return nil
}

func (r *userRepository) AppendPaymentEntry(ctx context.Context, userID string, entry domain.PaymentEntry) error {
	ref := r.client.Collection(collUsers).Doc(userID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *fs.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if snap != nil && !snap.Exists() {
				return domain.ErrNotFound
			}
			return err
		}
		var user domain.User
		if err := snap.DataTo(&user); err != nil {
			return err
		}
		history := append(user.PaymentHistory, entry)
		return tx.Update(ref, []fs.Update{
			{Path: "paymentHistory", Value: history},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
	if err != nil {
		if err == domain.ErrNotFound {
			return err
		}
		return fmt.Errorf("append payment entry for user %s: %w", userID, err)
	}
	return nil
}

func (r *userRepository) SetBillingInfo(ctx context.Context, userID string, info domain.BillingInfo) error {
	_, err := r.client.Collection(collUsers).Doc(userID).Update(ctx, []fs.Update{
		{Path: "billingInfo", Value: info},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return fmt.Errorf("set billing info for user %s: %w", userID, err)
	}
	return nil
}

func (r *userRepository) ListExpiredSubscriptions(ctx context.Context, before time.Time) ([]domain.User, error) {
	it := r.client.Collection(collUsers).
		Where("subscription.isActive", "==", true).
		Where("subscription.renewalDate", "<", before).
		Documents(ctx)
	defer it.Stop()

	var users []domain.User
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list expired user subscriptions: %w", err)
		}
		var user domain.User
		if err := snap.DataTo(&user); err != nil {
			return nil, fmt.Errorf("decode user %s: %w", snap.Ref.ID, err)
		}
		user.ID = snap.Ref.ID
		users = append(users, user)
	}
	return users, nil
}

func (r *userRepository) DeactivateSubscription(ctx context.Context, userID string) error {
	_, err := r.client.Collection(collUsers).Doc(userID).Update(ctx, []fs.Update{
		{Path: "subscription.isActive", Value: false},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return fmt.Errorf("deactivate subscription for user %s: %w", userID, err)
	}
	return nil
}
