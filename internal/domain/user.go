package domain

import "time"

// User is a store owner. Only the fields the payment flows touch are modeled;
// profile management lives elsewhere.
type User struct {
	ID             string           `json:"id" firestore:"id"`
	FirstName      string           `json:"first_name" firestore:"first_name"`
	LastName       string           `json:"last_name" firestore:"last_name"`
	Email          string           `json:"email" firestore:"email"`
	Phone          string           `json:"phone" firestore:"phone"`
	StoreRefs      []string         `json:"storeRef" firestore:"storeRef"`
	BillingInfo    BillingInfo      `json:"billingInfo" firestore:"billingInfo"`
	Subscription   UserSubscription `json:"subscription" firestore:"subscription"`
	PaymentHistory []PaymentEntry   `json:"paymentHistory" firestore:"paymentHistory"`
	CreatedAt      time.Time        `json:"createdAt" firestore:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt" firestore:"updatedAt"`
}

// OwnsStore reports whether the user is associated with the store.
func (u *User) OwnsStore(storeID string) bool {
	for _, ref := range u.StoreRefs {
		if ref == storeID {
			return true
		}
	}
	return false
}

// BillingInfo carries the payout identity established at subaccount creation.
type BillingInfo struct {
	Name            string `json:"name" firestore:"name"`
	SubaccountCode  string `json:"subAccountCode" firestore:"subAccountCode"`
	PaymentProvider string `json:"paymentProvider" firestore:"paymentProvider"`
}

// UserSubscription tracks the store-count entitlement bought through the
// store plans.
type UserSubscription struct {
	IsActive      bool      `json:"isActive" firestore:"isActive"`
	AllowedStores int       `json:"allowedStores" firestore:"allowedStores"`
	PlanID        string    `json:"planId" firestore:"planId"`
	Price         int64     `json:"price" firestore:"price"`
	RenewalDate   time.Time `json:"renewalDate" firestore:"renewalDate"`
}

// PaymentEntry is the mutable per-store aggregate on the owner's payment
// history. Order credits add to it; reconciled withdrawals subtract.
type PaymentEntry struct {
	ID             string            `json:"id" firestore:"id"`
	UserID         string            `json:"userId" firestore:"userId"`
	StoreID        string            `json:"storeId" firestore:"storeId"`
	PaymentMethod  string            `json:"paymentMethod" firestore:"paymentMethod"`
	Provider       string            `json:"paymentProvider" firestore:"paymentProvider"`
	Amount         int64             `json:"amount" firestore:"amount"`
	Status         string            `json:"status" firestore:"status"`
	TransactionID  string            `json:"transactionId" firestore:"transactionId"`
	PaymentDetails map[string]string `json:"paymentDetails" firestore:"paymentDetails"`
	CreatedAt      time.Time         `json:"createdAt" firestore:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt" firestore:"updatedAt"`
}
