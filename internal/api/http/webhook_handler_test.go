package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/paystack"
	"github.com/kofi-dx/NoxManage/internal/service"
)

type mockOrderService struct{ mock.Mock }

func (m *mockOrderService) ReconcileOrderPayment(ctx context.Context, charge *paystack.ChargeData) error {
	return m.Called(ctx, charge).Error(0)
}

func (m *mockOrderService) HandlePaymentFailure(ctx context.Context, charge *paystack.ChargeData) error {
	return m.Called(ctx, charge).Error(0)
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, userID, storeID, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	args := m.Called(ctx, userID, storeID, orderID, status)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderService) Delete(ctx context.Context, userID, storeID, orderID string) error {
	return m.Called(ctx, userID, storeID, orderID).Error(0)
}

type mockSubscriptionService struct{ mock.Mock }

func (m *mockSubscriptionService) ReconcileProductPlan(ctx context.Context, charge *paystack.ChargeData) error {
	return m.Called(ctx, charge).Error(0)
}

func (m *mockSubscriptionService) ReconcileStorePlan(ctx context.Context, charge *paystack.ChargeData) error {
	return m.Called(ctx, charge).Error(0)
}

func (m *mockSubscriptionService) InitializePlan(ctx context.Context, userID, email, planCode, storeID string) (*paystack.InitializeResult, error) {
	args := m.Called(ctx, userID, email, planCode, storeID)
	if r := args.Get(0); r != nil {
		return r.(*paystack.InitializeResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionService) SweepExpired(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockWithdrawalService struct{ mock.Mock }

func (m *mockWithdrawalService) InitiateWithdrawal(ctx context.Context, userID string, req service.WithdrawalRequest) (*service.WithdrawalReceipt, error) {
	args := m.Called(ctx, userID, req)
	if r := args.Get(0); r != nil {
		return r.(*service.WithdrawalReceipt), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWithdrawalService) CheckWithdrawal(ctx context.Context, userID, storeID string, amount domain.Money) (*service.WithdrawCheck, error) {
	args := m.Called(ctx, userID, storeID, amount)
	if r := args.Get(0); r != nil {
		return r.(*service.WithdrawCheck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWithdrawalService) CompleteTransfer(ctx context.Context, transfer *paystack.TransferData) error {
	return m.Called(ctx, transfer).Error(0)
}

func newWebhookFixture() (*WebhookHandler, *paystack.SignatureVerifier, *mockOrderService, *mockSubscriptionService, *mockWithdrawalService) {
	verifier := paystack.NewSignatureVerifier("sk_test_secret")
	orders := new(mockOrderService)
	subs := new(mockSubscriptionService)
	withdrawals := new(mockWithdrawalService)
	handler := NewWebhookHandler(verifier, orders, subs, withdrawals)
	return handler, verifier, orders, subs, withdrawals
}

func postWebhook(handler *WebhookHandler, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/paystack", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set(paystack.SignatureHeader, signature)
	}
	rec := httptest.NewRecorder()
	handler.HandleWebhook(rec, req)
	return rec
}

func TestHandleWebhook_SignatureChecks(t *testing.T) {
	handler, verifier, orders, _, _ := newWebhookFixture()
	body := []byte(`{"event":"charge.success","data":{"amount":50000,"metadata":{"orderId":"ord_1","clientId":"cli_1","storeId":"st_1"}}}`)

	t.Run("missing signature", func(t *testing.T) {
		rec := postWebhook(handler, body, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong signature", func(t *testing.T) {
		rec := postWebhook(handler, body, "deadbeef")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		orders.AssertNotCalled(t, "ReconcileOrderPayment", mock.Anything, mock.Anything)
	})

	t.Run("transfer signature mismatch answers 401", func(t *testing.T) {
		transferBody := []byte(`{"event":"transfer.success","data":{"id":1,"amount":20000}}`)
		rec := postWebhook(handler, transferBody, "deadbeef")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("signature over mutated body fails", func(t *testing.T) {
		sig := verifier.Sign(body)
		mutated := append([]byte(nil), body...)
		mutated[10] ^= 0x01
		rec := postWebhook(handler, mutated, sig)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleWebhook_Dispatch(t *testing.T) {
	t.Run("order payment", func(t *testing.T) {
		handler, verifier, orders, _, _ := newWebhookFixture()
		body := []byte(`{"event":"charge.success","data":{"amount":50000,"reference":"ref_1","metadata":{"orderId":"ord_1","clientId":"cli_1","storeId":"st_1"}}}`)
		orders.On("ReconcileOrderPayment", mock.Anything, mock.MatchedBy(func(c *paystack.ChargeData) bool {
			return c.Metadata.OrderID == "ord_1"
		})).Return(nil)

		rec := postWebhook(handler, body, verifier.Sign(body))
		assert.Equal(t, http.StatusOK, rec.Code)
		orders.AssertExpectations(t)
	})

	t.Run("plan charge goes to product plan reconciler", func(t *testing.T) {
		handler, verifier, _, subs, _ := newWebhookFixture()
		body := []byte(`{"event":"charge.success","data":{"amount":15900,"reference":"ref_2","plan":{"plan_code":"PLN_x"},"metadata":{"storeId":"st_1"}}}`)
		subs.On("ReconcileProductPlan", mock.Anything, mock.Anything).Return(nil)

		rec := postWebhook(handler, body, verifier.Sign(body))
		assert.Equal(t, http.StatusOK, rec.Code)
		subs.AssertExpectations(t)
	})

	t.Run("plain charge goes to store plan reconciler", func(t *testing.T) {
		handler, verifier, _, subs, _ := newWebhookFixture()
		body := []byte(`{"event":"charge.success","data":{"amount":14900,"reference":"ref_3","customer":{"email":"o@x.com"}}}`)
		subs.On("ReconcileStorePlan", mock.Anything, mock.Anything).Return(nil)

		rec := postWebhook(handler, body, verifier.Sign(body))
		assert.Equal(t, http.StatusOK, rec.Code)
		subs.AssertExpectations(t)
	})

	t.Run("transfer success settles withdrawal", func(t *testing.T) {
		handler, verifier, _, _, withdrawals := newWebhookFixture()
		body := []byte(`{"event":"transfer.success","data":{"id":42,"amount":20000,"reference":"ref_w1","recipient":{"metadata":{"userId":"u1","storeId":"st_1"}}}}`)
		withdrawals.On("CompleteTransfer", mock.Anything, mock.MatchedBy(func(tr *paystack.TransferData) bool {
			return tr.Reference == "ref_w1" && tr.Recipient.Metadata.StoreID == "st_1"
		})).Return(nil)

		rec := postWebhook(handler, body, verifier.Sign(body))
		assert.Equal(t, http.StatusOK, rec.Code)
		withdrawals.AssertExpectations(t)
	})

	t.Run("duplicate event answers 200", func(t *testing.T) {
		handler, verifier, orders, _, _ := newWebhookFixture()
		body := []byte(`{"event":"charge.success","data":{"amount":50000,"reference":"ref_1","metadata":{"orderId":"ord_1","clientId":"cli_1","storeId":"st_1"}}}`)
		orders.On("ReconcileOrderPayment", mock.Anything, mock.Anything).Return(domain.ErrDuplicateEvent)

		rec := postWebhook(handler, body, verifier.Sign(body))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Duplicate event", resp["message"])
	})

	t.Run("unknown store answers 404", func(t *testing.T) {
		handler, verifier, orders, _, _ := newWebhookFixture()
		body := []byte(`{"event":"charge.success","data":{"amount":50000,"reference":"ref_1","metadata":{"orderId":"ord_1","clientId":"cli_1","storeId":"st_x"}}}`)
		orders.On("ReconcileOrderPayment", mock.Anything, mock.Anything).Return(domain.ErrNotFound)

		rec := postWebhook(handler, body, verifier.Sign(body))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unsupported event answers 400", func(t *testing.T) {
		handler, verifier, _, _, _ := newWebhookFixture()
		body := []byte(`{"event":"invoice.create","data":{}}`)
		rec := postWebhook(handler, body, verifier.Sign(body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
