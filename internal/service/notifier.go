package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/kofi-dx/NoxManage/internal/logger"
)

// providerNotifier delivers email through SendGrid and SMS through an HTTP
// bulk-SMS provider.
type providerNotifier struct {
	email     *sendgrid.Client
	fromName  string
	fromEmail string

	smsURL     string
	smsAPIKey  string
	smsSender  string
	httpClient *http.Client
}

func NewNotifier(sendgridAPIKey, fromName, fromEmail, smsURL, smsAPIKey, smsSender string) Notifier {
	return &providerNotifier{
		email:      sendgrid.NewSendClient(sendgridAPIKey),
		fromName:   fromName,
		fromEmail:  fromEmail,
		smsURL:     smsURL,
		smsAPIKey:  smsAPIKey,
		smsSender:  smsSender,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *providerNotifier) SendEmail(ctx context.Context, to, subject, body string) error {
	from := mail.NewEmail(n.fromName, n.fromEmail)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), body, "")

	logger.ExternalServiceCall("sendgrid", "send_email")
	resp, err := n.email.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send_email", err)
		return fmt.Errorf("send email: %w", err)
	}
	if resp.StatusCode >= 300 {
		err = fmt.Errorf("send email: sendgrid responded %d", resp.StatusCode)
		logger.ExternalServiceResult("sendgrid", "send_email", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send_email", nil)
	return nil
}

type smsPayload struct {
	Sender     string   `json:"sender"`
	Message    string   `json:"message"`
	Recipients []string `json:"recipients"`
}

func (n *providerNotifier) SendSMS(ctx context.Context, phone, message string) error {
	if n.smsURL == "" {
		return nil
	}
	buf, err := json.Marshal(smsPayload{
		Sender:     n.smsSender,
		Message:    message,
		Recipients: []string{phone},
	})
	if err != nil {
		return fmt.Errorf("marshal sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.smsURL, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", n.smsAPIKey)

	logger.ExternalServiceCall("sms", "send_sms")
	resp, err := n.httpClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("sms", "send_sms", err)
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		err = fmt.Errorf("send sms: provider responded %d", resp.StatusCode)
		logger.ExternalServiceResult("sms", "send_sms", err)
		return err
	}
	logger.ExternalServiceResult("sms", "send_sms", nil)
	return nil
}
