package paystack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEventClassification(t *testing.T) {
	tests := []struct {
		name string
		body string
		want EventKind
	}{
		{
			name: "charge with order metadata routes to order payment",
			body: `{"event":"charge.success","data":{"amount":50000,"reference":"ref_1","metadata":{"orderId":"ord_1","clientId":"cli_1","storeId":"st_1"}}}`,
			want: EventOrderPayment,
		},
		{
			name: "order metadata wins over plan code",
			body: `{"event":"charge.success","data":{"amount":50000,"plan":{"plan_code":"PLN_x"},"metadata":{"orderId":"ord_1"}}}`,
			want: EventOrderPayment,
		},
		{
			name: "plan code without order routes to subscription payment",
			body: `{"event":"charge.success","data":{"amount":15900,"plan":{"plan_code":"PLN_x"},"metadata":{"storeId":"st_1"}}}`,
			want: EventSubscriptionPayment,
		},
		{
			name: "plain charge routes to store payment",
			body: `{"event":"charge.success","data":{"amount":14900,"customer":{"email":"o@x.com"}}}`,
			want: EventStorePayment,
		},
		{
			name: "product success alias routes to subscription payment",
			body: `{"event":"product.success","data":{"amount":15900,"plan":{"plan_code":"PLN_x"},"metadata":{"storeId":"st_1"}}}`,
			want: EventSubscriptionPayment,
		},
		{
			name: "store success alias routes to store payment",
			body: `{"event":"store.success","data":{"amount":14900,"customer":{"email":"o@x.com"}}}`,
			want: EventStorePayment,
		},
		{
			name: "charge failed routes to payment failure",
			body: `{"event":"charge.failed","data":{"amount":50000,"reference":"ref_2"}}`,
			want: EventPaymentFailure,
		},
		{
			name: "transfer success routes to transfer",
			body: `{"event":"transfer.success","data":{"id":9,"amount":20000,"reference":"ref_3"}}`,
			want: EventTransferSuccess,
		},
		{
			name: "unrecognized event type is unknown without error",
			body: `{"event":"invoice.create","data":{}}`,
			want: EventUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := ParseEvent([]byte(tt.body))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, event.Kind)
		})
	}
}

func TestParseEventPayloads(t *testing.T) {
	t.Run("charge payload", func(t *testing.T) {
		body := `{"event":"charge.success","data":{"amount":50000,"reference":"ref_1","customer":{"email":"b@x.com"},"metadata":{"orderId":"ord_1","clientId":"cli_1","storeId":"st_1","products":[{"id":"p1","name":"Mug","price":25000,"qty":2}]}}}`
		event, err := ParseEvent([]byte(body))
		assert.NoError(t, err)
		assert.NotNil(t, event.Charge)
		assert.Nil(t, event.Transfer)
		assert.Equal(t, int64(50000), event.Charge.Amount)
		assert.Equal(t, "b@x.com", event.Charge.Customer.Email)
		assert.Len(t, event.Charge.Metadata.Products, 1)
		assert.Equal(t, int64(2), event.Charge.Metadata.Products[0].Quantity)
	})

	t.Run("transfer payload carries recipient metadata", func(t *testing.T) {
		body := `{"event":"transfer.success","data":{"id":42,"amount":20000,"reference":"ref_7","recipient":{"metadata":{"userId":"u1","storeId":"st_1","momoNumber":"0551234567","tax":"12.00"}}}}`
		event, err := ParseEvent([]byte(body))
		assert.NoError(t, err)
		assert.NotNil(t, event.Transfer)
		assert.Equal(t, "u1", event.Transfer.Recipient.Metadata.UserID)
		assert.Equal(t, "12.00", event.Transfer.Recipient.Metadata.Tax)
	})

	t.Run("malformed body errors", func(t *testing.T) {
		_, err := ParseEvent([]byte(`{not json`))
		assert.Error(t, err)
	})
}
