package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kofi-dx/NoxManage/internal/security"
)

// NewRouter wires every endpoint. The webhook and checkout routes are open
// (the webhook authenticates by signature, checkout by design); everything
// else sits behind the bearer-token middleware.
func NewRouter(
	tokens security.TokenManager,
	webhooks *WebhookHandler,
	withdrawals *WithdrawalHandler,
	orders *OrderHandler,
	subscriptions *SubscriptionHandler,
) *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/webhook/paystack", webhooks.HandleWebhook).Methods(http.MethodPost)
	api.HandleFunc("/stores/{storeId}/checkout", orders.HandleCheckout).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokens))
	authed.HandleFunc("/stores/{storeId}/withdraw", withdrawals.HandleWithdraw).Methods(http.MethodPost)
	authed.HandleFunc("/stores/{storeId}/withdrawCheck", withdrawals.HandleWithdrawCheck).Methods(http.MethodPost)
	authed.HandleFunc("/stores/{storeId}/balance", withdrawals.HandleBalance).Methods(http.MethodGet)
	authed.HandleFunc("/stores/{storeId}/orders/{orderId}", orders.HandleUpdateOrder).Methods(http.MethodPatch)
	authed.HandleFunc("/stores/{storeId}/orders/{orderId}", orders.HandleDeleteOrder).Methods(http.MethodDelete)
	authed.HandleFunc("/subscriptions/initialize", subscriptions.HandleInitializePlan).Methods(http.MethodPost)
	authed.HandleFunc("/subaccounts", subscriptions.HandleCreateSubaccount).Methods(http.MethodPost)

	return router
}
