package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/service"
)

type WithdrawalHandler struct {
	withdrawals service.WithdrawalService
	ledger      service.LedgerService
}

func NewWithdrawalHandler(withdrawals service.WithdrawalService, ledger service.LedgerService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawals: withdrawals, ledger: ledger}
}

type withdrawRequest struct {
	Amount       string `json:"amount"`
	MomoProvider string `json:"momoProvider"`
	MomoNumber   string `json:"momoNumber"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
}

func (h *WithdrawalHandler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	claims, ok := UserFromContext(r.Context())
	if !ok {
		respondErrorMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req withdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	amount, err := domain.ParseMoney(req.Amount)
	if err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid amount")
		return
	}

	receipt, err := h.withdrawals.InitiateWithdrawal(r.Context(), claims.UserID(), service.WithdrawalRequest{
		StoreID:      mux.Vars(r)["storeId"],
		Amount:       amount,
		MomoProvider: req.MomoProvider,
		MomoNumber:   req.MomoNumber,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":  "Withdrawal initiated",
		"response": receipt,
	})
}

type withdrawCheckRequest struct {
	Amount string `json:"amount"`
}

func (h *WithdrawalHandler) HandleWithdrawCheck(w http.ResponseWriter, r *http.Request) {
	claims, ok := UserFromContext(r.Context())
	if !ok {
		respondErrorMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req withdrawCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	amount, err := domain.ParseMoney(req.Amount)
	if err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid amount")
		return
	}

	check, err := h.withdrawals.CheckWithdrawal(r.Context(), claims.UserID(), mux.Vars(r)["storeId"], amount)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, check)
}

func (h *WithdrawalHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	claims, ok := UserFromContext(r.Context())
	if !ok {
		respondErrorMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}
	balance, err := h.ledger.GetBalance(r.Context(), claims.UserID(), mux.Vars(r)["storeId"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"balance": balance.String()})
}
