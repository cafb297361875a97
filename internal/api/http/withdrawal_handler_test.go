package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/paystack"
	"github.com/kofi-dx/NoxManage/internal/security"
	"github.com/kofi-dx/NoxManage/internal/service"
)

type stubLedger struct{}

func (stubLedger) GetBalance(ctx context.Context, userID, storeID string) (domain.Money, error) {
	return domain.MustParseMoney("788.00"), nil
}

type stubCheckout struct{}

func (stubCheckout) Checkout(ctx context.Context, storeID string, req service.CheckoutRequest) (*paystack.InitializeResult, error) {
	return nil, domain.ErrValidation
}

type stubSubaccounts struct{}

func (stubSubaccounts) CreateSubaccount(ctx context.Context, userID string, req service.SubaccountRequest) (string, error) {
	return "ACCT_1", nil
}

func newTestRouter(withdrawals *mockWithdrawalService) (http.Handler, string) {
	tokens := security.NewTokenManager("test-secret")
	token, _ := tokens.GenerateAccessToken("u1", "kofi@example.com")

	verifier := paystack.NewSignatureVerifier("sk_test_secret")
	webhookHandler := NewWebhookHandler(verifier, new(mockOrderService), new(mockSubscriptionService), withdrawals)
	withdrawalHandler := NewWithdrawalHandler(withdrawals, stubLedger{})
	orderHandler := NewOrderHandler(new(mockOrderService), stubCheckout{})
	subscriptionHandler := NewSubscriptionHandler(new(mockSubscriptionService), stubSubaccounts{})

	return NewRouter(tokens, webhookHandler, withdrawalHandler, orderHandler, subscriptionHandler), token
}

func TestWithdrawRoute(t *testing.T) {
	t.Run("rejects missing token", func(t *testing.T) {
		router, _ := newTestRouter(new(mockWithdrawalService))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/stores/st_1/withdraw",
			bytes.NewReader([]byte(`{"amount":"200.00","momoProvider":"MTN","momoNumber":"0551234567"}`)))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		router, _ := newTestRouter(new(mockWithdrawalService))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/stores/st_1/withdraw",
			bytes.NewReader([]byte(`{"amount":"200.00","momoProvider":"MTN","momoNumber":"0551234567"}`)))
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("passes caller and store through", func(t *testing.T) {
		withdrawals := new(mockWithdrawalService)
		router, token := newTestRouter(withdrawals)
		withdrawals.On("InitiateWithdrawal", mock.Anything, "u1", service.WithdrawalRequest{
			StoreID:      "st_1",
			Amount:       domain.MustParseMoney("200.00"),
			MomoProvider: "MTN",
			MomoNumber:   "0551234567",
		}).Return(&service.WithdrawalReceipt{
			Reference: "ref_1",
			Amount:    domain.MustParseMoney("200.00"),
			Tax:       domain.MustParseMoney("12.00"),
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/stores/st_1/withdraw",
			bytes.NewReader([]byte(`{"amount":"200.00","momoProvider":"MTN","momoNumber":"0551234567"}`)))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		withdrawals.AssertExpectations(t)
	})

	t.Run("maps limit errors to 400", func(t *testing.T) {
		withdrawals := new(mockWithdrawalService)
		router, token := newTestRouter(withdrawals)
		withdrawals.On("InitiateWithdrawal", mock.Anything, "u1", mock.Anything).
			Return(nil, domain.ErrLimitExceeded)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/stores/st_1/withdraw",
			bytes.NewReader([]byte(`{"amount":"900.00","momoProvider":"MTN","momoNumber":"0551234567"}`)))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWithdrawCheckRoute(t *testing.T) {
	withdrawals := new(mockWithdrawalService)
	router, token := newTestRouter(withdrawals)
	withdrawals.On("CheckWithdrawal", mock.Anything, "u1", "st_1", domain.MustParseMoney("150.00")).
		Return(&service.WithdrawCheck{
			Message:             "Withdrawal limit reached for today",
			LimitReached:        true,
			TotalWithdrawnToday: domain.MustParseMoney("500.00"),
			WithdrawalLimit:     domain.MustParseMoney("600.00"),
		}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stores/st_1/withdrawCheck",
		bytes.NewReader([]byte(`{"amount":"150.00"}`)))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"limitReached":true`)
	assert.Contains(t, rec.Body.String(), `"withdrawalLimit":"600.00"`)
}

func TestBalanceRoute(t *testing.T) {
	router, token := newTestRouter(new(mockWithdrawalService))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores/st_1/balance", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"balance":"788.00"`)
}
