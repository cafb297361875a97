package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/kofi-dx/NoxManage/internal/logger"
	"github.com/kofi-dx/NoxManage/internal/paystack"
	"github.com/kofi-dx/NoxManage/internal/service"
)

// WebhookHandler is the single ingestion point for gateway callbacks. It
// verifies the signature over the raw bytes, classifies the event once, and
// dispatches to the matching reconciler.
type WebhookHandler struct {
	verifier      *paystack.SignatureVerifier
	orders        service.OrderService
	subscriptions service.SubscriptionService
	withdrawals   service.WithdrawalService
}

func NewWebhookHandler(
	verifier *paystack.SignatureVerifier,
	orders service.OrderService,
	subscriptions service.SubscriptionService,
	withdrawals service.WithdrawalService,
) *WebhookHandler {
	return &WebhookHandler{
		verifier:      verifier,
		orders:        orders,
		subscriptions: subscriptions,
		withdrawals:   withdrawals,
	}
}

func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	// The signature covers the exact bytes on the wire; read them before any
	// JSON decoding.
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "unreadable body")
		return
	}

	signature := r.Header.Get(paystack.SignatureHeader)
	if !h.verifier.Verify(body, signature) {
		// Transfer webhooks answer 401 on a signature mismatch; everything
		// else answers 400. The body is only peeked at to pick the status.
		status := http.StatusBadRequest
		if env, perr := paystack.ParseEvent(body); perr == nil && strings.HasPrefix(env.Raw.Event, "transfer.") {
			status = http.StatusUnauthorized
		}
		logger.Warn("Webhook signature rejected", "status", status)
		respondErrorMessage(w, status, "invalid signature")
		return
	}

	event, err := paystack.ParseEvent(body)
	if err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "malformed event")
		return
	}

	switch event.Kind {
	case paystack.EventOrderPayment:
		logger.WebhookEvent(event.Raw.Event, event.Charge.Reference, "kind", string(event.Kind))
		err = h.orders.ReconcileOrderPayment(r.Context(), event.Charge)
	case paystack.EventSubscriptionPayment:
		logger.WebhookEvent(event.Raw.Event, event.Charge.Reference, "kind", string(event.Kind))
		err = h.subscriptions.ReconcileProductPlan(r.Context(), event.Charge)
	case paystack.EventStorePayment:
		logger.WebhookEvent(event.Raw.Event, event.Charge.Reference, "kind", string(event.Kind))
		err = h.subscriptions.ReconcileStorePlan(r.Context(), event.Charge)
	case paystack.EventPaymentFailure:
		logger.WebhookEvent(event.Raw.Event, event.Charge.Reference, "kind", string(event.Kind))
		err = h.orders.HandlePaymentFailure(r.Context(), event.Charge)
	case paystack.EventTransferSuccess:
		logger.WebhookEvent(event.Raw.Event, event.Transfer.Reference, "kind", string(event.Kind))
		err = h.withdrawals.CompleteTransfer(r.Context(), event.Transfer)
	default:
		respondErrorMessage(w, http.StatusBadRequest, "unsupported event type")
		return
	}

	if err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Event processed")
}
