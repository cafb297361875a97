package paystack

import (
	"encoding/json"
	"fmt"

	"github.com/kofi-dx/NoxManage/internal/domain"
)

// EventKind is the closed set of webhook variants the router dispatches on.
// Classification happens once at the ingestion boundary; reconcilers never
// sniff payload fields themselves.
type EventKind string

const (
	EventOrderPayment        EventKind = "order_payment"
	EventSubscriptionPayment EventKind = "subscription_payment"
	EventStorePayment        EventKind = "store_payment"
	EventPaymentFailure      EventKind = "payment_failure"
	EventTransferSuccess     EventKind = "transfer_success"
	EventUnknown             EventKind = "unknown"
)

// Envelope is the raw webhook body shape: {event, data}.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ChargeData is the payload of charge.success / charge.failed events.
type ChargeData struct {
	ID        int64          `json:"id"`
	Amount    int64          `json:"amount"` // minor units
	Reference string         `json:"reference"`
	Customer  Customer       `json:"customer"`
	Plan      PlanRef        `json:"plan"`
	Metadata  ChargeMetadata `json:"metadata"`
}

type Customer struct {
	Email string `json:"email"`
}

type PlanRef struct {
	PlanCode string `json:"plan_code"`
}

// ChargeMetadata is the correlation payload attached at checkout or
// subscription initialization. Order events carry OrderID/ClientID; plan
// events carry StoreID only.
type ChargeMetadata struct {
	OrderID         string                 `json:"orderId"`
	ClientID        string                 `json:"clientId"`
	StoreID         string                 `json:"storeId"`
	Products        []ProductMeta          `json:"products"`
	CustomerDetails domain.CustomerDetails `json:"customerDetails"`
}

// ProductMeta is the line-item snapshot carried through checkout metadata.
// Price is in minor units.
type ProductMeta struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"qty"`
	Image    string `json:"image"`
}

// TransferData is the payload of transfer.success events. The recipient
// metadata reconstructs the withdrawal context attached at initiation.
type TransferData struct {
	ID        int64     `json:"id"`
	Amount    int64     `json:"amount"` // minor units
	Reference string    `json:"reference"`
	Recipient Recipient `json:"recipient"`
}

type Recipient struct {
	Metadata TransferMetadata `json:"metadata"`
}

// TransferMetadata travels on the gateway-side recipient and transfer objects
// so the completion webhook needs no local pending-transfer lookup.
type TransferMetadata struct {
	UserID       string `json:"userId"`
	StoreID      string `json:"storeId"`
	MomoProvider string `json:"momoProvider"`
	MomoNumber   string `json:"momoNumber"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Tax          string `json:"tax"`
}

// Event is a classified webhook. Exactly one of Charge/Transfer is set,
// matching Kind.
type Event struct {
	Kind     EventKind
	Raw      Envelope
	Charge   *ChargeData
	Transfer *TransferData
}

// ParseEvent decodes and classifies a verified webhook body. Unrecognized
// event types yield EventUnknown with no error; malformed bodies error.
func ParseEvent(body []byte) (*Event, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("malformed webhook body: %w", err)
	}

	switch env.Event {
	case "charge.success":
		var charge ChargeData
		if err := json.Unmarshal(env.Data, &charge); err != nil {
			return nil, fmt.Errorf("malformed charge payload: %w", err)
		}
		kind := EventStorePayment
		if charge.Metadata.OrderID != "" || charge.Metadata.ClientID != "" {
			kind = EventOrderPayment
		} else if charge.Plan.PlanCode != "" {
			kind = EventSubscriptionPayment
		}
		return &Event{Kind: kind, Raw: env, Charge: &charge}, nil

	// The gateway is also configured to deliver plan and store charges under
	// their own event names; they carry the same charge payload.
	case "product.success":
		var charge ChargeData
		if err := json.Unmarshal(env.Data, &charge); err != nil {
			return nil, fmt.Errorf("malformed charge payload: %w", err)
		}
		return &Event{Kind: EventSubscriptionPayment, Raw: env, Charge: &charge}, nil

	case "store.success":
		var charge ChargeData
		if err := json.Unmarshal(env.Data, &charge); err != nil {
			return nil, fmt.Errorf("malformed charge payload: %w", err)
		}
		return &Event{Kind: EventStorePayment, Raw: env, Charge: &charge}, nil

	case "charge.failed":
		var charge ChargeData
		if err := json.Unmarshal(env.Data, &charge); err != nil {
			return nil, fmt.Errorf("malformed charge payload: %w", err)
		}
		return &Event{Kind: EventPaymentFailure, Raw: env, Charge: &charge}, nil

	case "transfer.success":
		var transfer TransferData
		if err := json.Unmarshal(env.Data, &transfer); err != nil {
			return nil, fmt.Errorf("malformed transfer payload: %w", err)
		}
		return &Event{Kind: EventTransferSuccess, Raw: env, Transfer: &transfer}, nil
	}

	return &Event{Kind: EventUnknown, Raw: env}, nil
}
