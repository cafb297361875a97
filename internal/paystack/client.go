package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/logger"
)

const defaultTimeout = 10 * time.Second

// Client talks to the Paystack REST API. All calls carry the bearer secret
// and a bounded deadline; failures surface as *domain.GatewayError so callers
// can tell gateway trouble apart from local state errors.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// apiResponse is the uniform Paystack envelope: {status, message, data}.
type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	op := method + " " + path

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &domain.GatewayError{Operation: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.ExternalServiceCall("paystack", op)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("paystack", op, err)
		return &domain.GatewayError{Operation: op, Err: err}
	}
	defer resp.Body.Close()

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		logger.ExternalServiceResult("paystack", op, err)
		return &domain.GatewayError{Operation: op, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !apiResp.Status {
		gerr := &domain.GatewayError{Operation: op, Status: resp.StatusCode, Message: apiResp.Message}
		logger.ExternalServiceResult("paystack", op, gerr)
		return gerr
	}
	logger.ExternalServiceResult("paystack", op, nil)

	if out != nil {
		if err := json.Unmarshal(apiResp.Data, out); err != nil {
			return &domain.GatewayError{Operation: op, Status: resp.StatusCode, Err: err}
		}
	}
	return nil
}

// InitializeRequest starts a hosted payment session. Plan and Subaccount are
// optional depending on the flow (subscription vs order checkout).
type InitializeRequest struct {
	Email       string          `json:"email"`
	Amount      int64           `json:"amount"` // minor units
	Plan        string          `json:"plan,omitempty"`
	Subaccount  string          `json:"subaccount,omitempty"`
	CallbackURL string          `json:"callback_url,omitempty"`
	Metadata    *ChargeMetadata `json:"metadata,omitempty"`
}

type InitializeResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

func (c *Client) InitializeTransaction(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	var out InitializeResult
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyResult is the server-side truth for a transaction reference.
type VerifyResult struct {
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
}

// Succeeded reports whether the gateway confirms the payment went through.
func (r *VerifyResult) Succeeded() bool { return r.Status == "success" }

func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*VerifyResult, error) {
	var out VerifyResult
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubaccountRequest registers a payout destination for split settlement.
type SubaccountRequest struct {
	BusinessName        string `json:"business_name"`
	AccountNumber       string `json:"account_number"`
	BankCode            string `json:"bank_code"`
	PercentageCharge    int    `json:"percentage_charge"`
	PrimaryContactEmail string `json:"primary_contact_email"`
}

type SubaccountResult struct {
	SubaccountCode string `json:"subaccount_code"`
}

func (c *Client) CreateSubaccount(ctx context.Context, req SubaccountRequest) (*SubaccountResult, error) {
	var out SubaccountResult
	if err := c.do(ctx, http.MethodPost, "/subaccount", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecipientRequest creates a transfer recipient. Metadata rides along so the
// completion webhook can reconstruct the withdrawal context.
type RecipientRequest struct {
	Type          string           `json:"type"`
	Name          string           `json:"name"`
	AccountNumber string           `json:"account_number"`
	BankCode      string           `json:"bank_code"`
	Currency      string           `json:"currency"`
	Metadata      TransferMetadata `json:"metadata"`
}

type RecipientResult struct {
	RecipientCode string `json:"recipient_code"`
}

func (c *Client) CreateTransferRecipient(ctx context.Context, req RecipientRequest) (*RecipientResult, error) {
	var out RecipientResult
	if err := c.do(ctx, http.MethodPost, "/transferrecipient", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TransferRequest initiates a payout. Reference is the client-generated
// idempotency key: retries of the same logical withdrawal reuse it so the
// gateway deduplicates instead of double-paying.
type TransferRequest struct {
	Source    string           `json:"source"`
	Amount    int64            `json:"amount"` // minor units
	Recipient string           `json:"recipient"`
	Reason    string           `json:"reason"`
	Reference string           `json:"reference,omitempty"`
	Metadata  TransferMetadata `json:"metadata"`
}

type TransferResult struct {
	ID           int64  `json:"id"`
	TransferCode string `json:"transfer_code"`
	Reference    string `json:"reference"`
	Status       string `json:"status"`
}

func (c *Client) InitiateTransfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	var out TransferResult
	if err := c.do(ctx, http.MethodPost, "/transfer", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
