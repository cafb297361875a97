package firestore

import (
	"context"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"

	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/repository"
)

type orderRepository struct {
	client *fs.Client
}

func NewOrderRepository(client *fs.Client) repository.OrderRepository {
	return &orderRepository{client: client}
}

func (r *orderRepository) orderRef(storeID, orderID string) *fs.DocumentRef {
	return r.client.Collection(collStores).Doc(storeID).Collection(collOrders).Doc(orderID)
}

func (r *orderRepository) mirrorRef(clientID, orderID string) *fs.DocumentRef {
	return r.client.Collection(collClients).Doc(clientID).Collection(collOrders).Doc(orderID)
}

func (r *orderRepository) CreateConfirmed(ctx context.Context, rec repository.ConfirmedOrder) error {
	orderRef := r.orderRef(rec.StoreID, rec.Order.ID)
	mirrorRef := r.mirrorRef(rec.Client.ID, rec.Order.ID)
	clientRef := r.client.Collection(collClients).Doc(rec.Client.ID)
	storeRef := r.client.Collection(collStores).Doc(rec.StoreID)
	userRef := r.client.Collection(collUsers).Doc(rec.OwnerID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *fs.Transaction) error {
		// All reads precede writes.
		orderSnap, err := tx.Get(orderRef)
		if err == nil && orderSnap.Exists() {
			return domain.ErrDuplicateEvent
		}
		if err != nil && (orderSnap == nil || orderSnap.Exists()) {
			return err
		}

		clientSnap, err := tx.Get(clientRef)
		if err != nil && (clientSnap == nil || clientSnap.Exists()) {
			return err
		}
		clientExists := clientSnap != nil && clientSnap.Exists()

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
		if err := tx.Set(orderRef, rec.Order); err != nil {
			return err
		}
		if err := tx.Set(mirrorRef, rec.Mirror); err != nil {
			return err
		}
		if !clientExists {
			if err := tx.Set(clientRef, rec.Client); err != nil {
				return err
			}
		}
		if err := tx.Update(storeRef, []fs.Update{
			{Path: "amount", Value: (balance + rec.Credit).String()},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}

		// The owner carries one running payment-history aggregate per store;
		// a first sale for the store appends a fresh entry.
		history := owner.PaymentHistory
		amended := false
		for i := len(history) - 1; i >= 0; i-- {
			if history[i].StoreID == rec.StoreID {
				history[i].Amount += rec.Credit.MinorUnits()
				history[i].UpdatedAt = now
				amended = true
				break
			}
		}
		if !amended {
			history = append(history, domain.PaymentEntry{
				ID:            rec.Order.ID,
				UserID:        rec.OwnerID,
				StoreID:       rec.StoreID,
				PaymentMethod: "paystack",
				Provider:      "paystack",
				Amount:        rec.Credit.MinorUnits(),
				Status:        "success",
				TransactionID: rec.Order.PaymentReference,
				CreatedAt:     now,
				UpdatedAt:     now,
			})
		}
		return tx.Update(userRef, []fs.Update{
			{Path: "paymentHistory", Value: history},
			{Path: "updatedAt", Value: now},
		})
	})
	switch err {
	case nil, domain.ErrDuplicateEvent, domain.ErrNotFound:
		return err
	default:
		return fmt.Errorf("create confirmed order %s: %w", rec.Order.ID, err)
	}
}

func (r *orderRepository) GetByID(ctx context.Context, storeID, orderID string) (*domain.Order, error) {
	snap, err := r.orderRef(storeID, orderID).Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	var order domain.Order
	if err := snap.DataTo(&order); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", orderID, err)
	}
	order.ID = snap.Ref.ID
	return &order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, storeID, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	orderRef := r.orderRef(storeID, orderID)
	var updated domain.Order

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *fs.Transaction) error {
		snap, err := tx.Get(orderRef)
		if err != nil {
			if snap != nil && !snap.Exists() {
				return domain.ErrNotFound
			}
			return err
		}
		var order domain.Order
		if err := snap.DataTo(&order); err != nil {
			return err
		}
		order.ID = snap.Ref.ID

		mirrorRef := r.mirrorRef(order.ClientID, orderID)
		mirrorSnap, err := tx.Get(mirrorRef)
		if err != nil && (mirrorSnap == nil || mirrorSnap.Exists()) {
			return err
		}
		mirrorExists := mirrorSnap != nil && mirrorSnap.Exists()

		now := time.Now()
		if err := tx.Update(orderRef, []fs.Update{
			{Path: "order_status", Value: status},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}
		if mirrorExists {
			if err := tx.Update(mirrorRef, []fs.Update{
				{Path: "order_status", Value: status},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return err
			}
		}
		order.Status = status
		order.UpdatedAt = now
		updated = order
		return nil
	})
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("update order %s status: %w", orderID, err)
	}
	return &updated, nil
}

func (r *orderRepository) Delete(ctx context.Context, storeID, orderID string) error {
	orderRef := r.orderRef(storeID, orderID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *fs.Transaction) error {
		snap, err := tx.Get(orderRef)
		if err != nil {
			if snap != nil && !snap.Exists() {
				return domain.ErrNotFound
			}
			return err
		}
		var order domain.Order
		if err := snap.DataTo(&order); err != nil {
			return err
		}

		if err := tx.Delete(orderRef); err != nil {
			return err
		}
		if order.ClientID != "" {
			// Mirror deletion is best effort; Delete on a missing doc is a
			// no-op in Firestore.
			return tx.Delete(r.mirrorRef(order.ClientID, orderID))
		}
		return nil
	})
	if err != nil {
		if err == domain.ErrNotFound {
			return err
		}
		return fmt.Errorf("delete order %s: %w", orderID, err)
	}
	return nil
}
