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

type storeRepository struct {
	client *fs.Client
}

func NewStoreRepository(client *fs.Client) repository.StoreRepository {
	return &storeRepository{client: client}
}

func (r *storeRepository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	snap, err := r.client.Collection(collStores).Doc(id).Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get store %s: %w", id, err)
	}
	var store domain.Store
	if err := snap.DataTo(&store); err != nil {
		return nil, fmt.Errorf("decode store %s: %w", id, err)
	}
	store.ID = snap.Ref.ID
	return &store, nil
}

func (r *storeRepository) SetSubaccountCode(ctx context.Context, storeID, code string) error {
	_, err := r.client.Collection(collStores).Doc(storeID).Update(ctx, []fs.Update{
		{Path: "subaccount_code", Value: code},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return fmt.Errorf("set subaccount code for store %s: %w", storeID, err)
	}
	return nil
}

func (r *storeRepository) ApplyProductPlan(ctx context.Context, storeID string, plan domain.Plan, renewal time.Time) (*domain.Store, error) {
	ref := r.client.Collection(collStores).Doc(storeID)
	var updated domain.Store

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *fs.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if snap != nil && !snap.Exists() {
				return domain.ErrNotFound
			}
			return err
		}
		var store domain.Store
		if err := snap.DataTo(&store); err != nil {
			return err
		}

		// Stacking policy: each purchase adds its allowance on top of the
		// current entitlement.
		sub := domain.StoreSubscription{
			IsActive:       true,
			AllowedProduct: store.Subscription.AllowedProduct + plan.Entitlement,
			PlanID:         plan.Code,
			Price:          plan.Price.MinorUnits(),
			RenewalDate:    renewal,
		}
		if err := tx.Update(ref, []fs.Update{
			{Path: "subscription", Value: sub},
			{Path: "updatedAt", Value: time.Now()},
		}); err != nil {
			return err
		}
		updated = store
		updated.Subscription = sub
		return nil
	})
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("apply product plan to store %s: %w", storeID, err)
	}
	updated.ID = storeID
	return &updated, nil
}

func (r *storeRepository) ListExpiredSubscriptions(ctx context.Context, before time.Time) ([]domain.Store, error) {
	it := r.client.Collection(collStores).
		Where("subscription.isActive", "==", true).
		Where("subscription.renewalDate", "<", before).
		Documents(ctx)
	defer it.Stop()

	var stores []domain.Store
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list expired store subscriptions: %w", err)
		}
		var store domain.Store
		if err := snap.DataTo(&store); err != nil {
			return nil, fmt.Errorf("decode store %s: %w", snap.Ref.ID, err)
		}
		store.ID = snap.Ref.ID
		stores = append(stores, store)
	}
	return stores, nil
}

func (r *storeRepository) DeactivateSubscription(ctx context.Context, storeID string) error {
	_, err := r.client.Collection(collStores).Doc(storeID).Update(ctx, []fs.Update{
		{Path: "subscription.isActive", Value: false},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return fmt.Errorf("deactivate subscription for store %s: %w", storeID, err)
	}
	return nil
}
