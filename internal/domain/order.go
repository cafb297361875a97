package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusDelivering OrderStatus = "Delivering"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusRefunded   OrderStatus = "Refunded"
)

// ValidOrderTransition reports whether a store owner may move an order from
// one status to another. Pending -> Delivering -> Delivered is the normal
// path; Cancelled and Refunded are terminal out-of-band values.
func ValidOrderTransition(from, to OrderStatus) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusDelivering || to == OrderStatusCancelled || to == OrderStatusRefunded
	case OrderStatusDelivering:
		return to == OrderStatusDelivered || to == OrderStatusCancelled || to == OrderStatusRefunded
	default:
		return false
	}
}

// OrderItem is a line-item snapshot. Snapshots, not references: later product
// edits must not rewrite historical orders.
type OrderItem struct {
	ProductID string `json:"id" firestore:"id"`
	Name      string `json:"name" firestore:"name"`
	Price     int64  `json:"price" firestore:"price"`
	Quantity  int64  `json:"quantity" firestore:"quantity"`
	Image     string `json:"image" firestore:"image"`
}

// CustomerDetails is the payer identity carried through checkout metadata.
type CustomerDetails struct {
	Name            string `json:"name" firestore:"name"`
	Email           string `json:"email" firestore:"email"`
	Phone           string `json:"phone" firestore:"phone"`
	Address         string `json:"address" firestore:"address"`
	Region          string `json:"region" firestore:"region"`
	City            string `json:"city" firestore:"city"`
	AdditionalNotes string `json:"additionalNotes" firestore:"additionalNotes"`
}

// Order is the store-side record, materialized only after the gateway
// confirms payment. The document id is the gateway-provided order id, which
// makes redelivered charge.success events idempotent.
type Order struct {
	ID               string      `json:"id" firestore:"id"`
	StoreID          string      `json:"storeId" firestore:"storeId"`
	ClientID         string      `json:"clientId" firestore:"clientId"`
	ClientName       string      `json:"clientName" firestore:"clientName"`
	Phone            string      `json:"phone" firestore:"phone"`
	Address          string      `json:"address" firestore:"address"`
	AdditionalNotes  string      `json:"additionalNotes" firestore:"additionalNotes"`
	Items            []OrderItem `json:"products" firestore:"products"`
	Amount           string      `json:"amount" firestore:"amount"`
	IsPaid           bool        `json:"isPaid" firestore:"isPaid"`
	Status           OrderStatus `json:"order_status" firestore:"order_status"`
	PaymentReference string      `json:"paymentReference" firestore:"paymentReference"`
	CreatedAt        time.Time   `json:"createdAt" firestore:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt" firestore:"updatedAt"`
}

// ClientOrder is the denormalized mirror kept under the client, including a
// snapshot of the store identity for order-history display.
type ClientOrder struct {
	ID               string        `json:"id" firestore:"id"`
	StoreID          string        `json:"storeId" firestore:"storeId"`
	Store            StoreSnapshot `json:"store" firestore:"store"`
	Items            []OrderItem   `json:"products" firestore:"products"`
	Amount           string        `json:"amount" firestore:"amount"`
	IsPaid           bool          `json:"isPaid" firestore:"isPaid"`
	Status           OrderStatus   `json:"order_status" firestore:"order_status"`
	PaymentReference string        `json:"paymentReference" firestore:"paymentReference"`
	CreatedAt        time.Time     `json:"createdAt" firestore:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt" firestore:"updatedAt"`
}

type StoreSnapshot struct {
	Name     string `json:"store" firestore:"store"`
	Location string `json:"storeLocation" firestore:"storeLocation"`
	Phone    string `json:"storePhone" firestore:"storePhone"`
}

// Client is the buyer record, upserted on first confirmed payment.
type Client struct {
	ID              string    `json:"id" firestore:"id"`
	Name            string    `json:"name" firestore:"name"`
	Email           string    `json:"email" firestore:"email"`
	Phone           string    `json:"phone" firestore:"phone"`
	Address         string    `json:"address" firestore:"address"`
	Region          string    `json:"region" firestore:"region"`
	City            string    `json:"city" firestore:"city"`
	AdditionalNotes string    `json:"additionalNotes" firestore:"additionalNotes"`
	CreatedAt       time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" firestore:"updatedAt"`
}
