package domain

import "time"

// Store owns the money balance that order payments credit and withdrawals
// debit. Amount stays string-encoded in the document to match what the
// dashboard renders; the ledger converts through Money.
type Store struct {
	ID             string            `json:"id" firestore:"id"`
	Name           string            `json:"name" firestore:"name"`
	UserID         string            `json:"userId" firestore:"userId"`
	Phone          string            `json:"phone" firestore:"phone"`
	Location       string            `json:"location" firestore:"location"`
	Amount         string            `json:"amount" firestore:"amount"`
	SubaccountCode string            `json:"subaccount_code" firestore:"subaccount_code"`
	Subscription   StoreSubscription `json:"subscription" firestore:"subscription"`
	CreatedAt      time.Time         `json:"createdAt" firestore:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt" firestore:"updatedAt"`
}

// StoreSubscription tracks the product-count entitlement bought through the
// product plans. AllowedProduct stacks across purchases.
type StoreSubscription struct {
	IsActive       bool      `json:"isActive" firestore:"isActive"`
	AllowedProduct int       `json:"allowedProduct" firestore:"allowedProduct"`
	PlanID         string    `json:"planId" firestore:"planId"`
	Price          int64     `json:"price" firestore:"price"`
	RenewalDate    time.Time `json:"renewalDate" firestore:"renewalDate"`
}

// Balance parses the string-encoded balance. A missing or empty amount reads
// as zero, matching how new stores are created.
func (s *Store) Balance() (Money, error) {
	return ParseMoney(s.Amount)
}
