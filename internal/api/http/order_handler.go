package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/service"
)

type OrderHandler struct {
	orders   service.OrderService
	checkout service.CheckoutService
}

func NewOrderHandler(orders service.OrderService, checkout service.CheckoutService) *OrderHandler {
	return &OrderHandler{orders: orders, checkout: checkout}
}

type updateOrderRequest struct {
	Status domain.OrderStatus `json:"order_status"`
}

func (h *OrderHandler) HandleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := UserFromContext(r.Context())
	if !ok {
		respondErrorMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	vars := mux.Vars(r)
	order, err := h.orders.UpdateStatus(r.Context(), claims.UserID(), vars["storeId"], vars["orderId"], req.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) HandleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := UserFromContext(r.Context())
	if !ok {
		respondErrorMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}
	vars := mux.Vars(r)
	if err := h.orders.Delete(r.Context(), claims.UserID(), vars["storeId"], vars["orderId"]); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Order deleted")
}

// HandleCheckout opens a hosted payment session for a buyer's cart. It is
// unauthenticated: buyers have no account, their identity travels in the
// customer details.
func (h *OrderHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.checkout.Checkout(r.Context(), mux.Vars(r)["storeId"], req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
