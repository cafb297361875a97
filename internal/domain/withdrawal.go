package domain

import "time"

type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusCompleted WithdrawalStatus = "completed"
	WithdrawalStatusFailed    WithdrawalStatus = "failed"
)

// Withdrawal is an immutable audit record under stores/{id}/withdrawals.
// The collection doubles as the dedupe index for transfer webhooks: an
// external reference appears on at most one completed or failed record.
type Withdrawal struct {
	ID            string           `json:"id" firestore:"id"`
	UserID        string           `json:"userId" firestore:"userId"`
	StoreID       string           `json:"storeId" firestore:"storeId"`
	Amount        string           `json:"amount" firestore:"amount"`
	Tax           string           `json:"tax" firestore:"tax"`
	MomoProvider  string           `json:"momoProvider" firestore:"momoProvider"`
	MomoNumber    string           `json:"momoNumber" firestore:"momoNumber"`
	PaymentMethod string           `json:"paymentMethod" firestore:"paymentMethod"`
	Recipient     RecipientDetails `json:"recipient" firestore:"recipient"`
	Reference     string           `json:"reference" firestore:"reference"`
	Status        WithdrawalStatus `json:"status" firestore:"status"`
	Reason        string           `json:"reason" firestore:"reason"`
	CreatedAt     time.Time        `json:"createdAt" firestore:"createdAt"`
}

type RecipientDetails struct {
	Name          string `json:"name" firestore:"name"`
	AccountNumber string `json:"account_number" firestore:"account_number"`
	BankCode      string `json:"bank_code" firestore:"bank_code"`
}
