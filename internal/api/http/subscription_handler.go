package http

import (
	"encoding/json"
	"net/http"

	"github.com/kofi-dx/NoxManage/internal/service"
)

type SubscriptionHandler struct {
	subscriptions service.SubscriptionService
	subaccounts   service.SubaccountService
}

func NewSubscriptionHandler(subscriptions service.SubscriptionService, subaccounts service.SubaccountService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions, subaccounts: subaccounts}
}

type initializePlanRequest struct {
	PlanCode string `json:"planCode"`
	StoreID  string `json:"storeId"`
}

func (h *SubscriptionHandler) HandleInitializePlan(w http.ResponseWriter, r *http.Request) {
	claims, ok := UserFromContext(r.Context())
	if !ok {
		respondErrorMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req initializePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.subscriptions.InitializePlan(r.Context(), claims.UserID(), claims.Email, req.PlanCode, req.StoreID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *SubscriptionHandler) HandleCreateSubaccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := UserFromContext(r.Context())
	if !ok {
		respondErrorMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req service.SubaccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	code, err := h.subaccounts.CreateSubaccount(r.Context(), claims.UserID(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message":        "Subaccount created",
		"subaccountCode": code,
	})
}
