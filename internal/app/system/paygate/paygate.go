// internal/app/system/paygate/paygate.go

// Package paygate integrates the Aamarpay payment gateway. Subscribing
// initiates a checkout session; the gateway later redirects the customer
// to our confirm/fail/cancel callbacks, and confirmation re-verifies the
// transaction server-side before any state changes.
package paygate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// paySuccessful is the gateway's verified-payment status value.
const paySuccessful = "Successful"

// Config carries gateway credentials and the callback URLs registered
// with each checkout session.
type Config struct {
	BaseURL      string // e.g. https://sandbox.aamarpay.com
	StoreID      string
	SignatureKey string
	SuccessURL   string
	FailURL      string
	CancelURL    string
}

// InitiateRequest describes one checkout session to open.
type InitiateRequest struct {
	TransactionID string
	Amount        string
	Currency      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       string
	Description   string
}

// CheckoutSession is returned to the client, which redirects the
// customer to PaymentURL.
type CheckoutSession struct {
	PaymentURL string `json:"paymentUrl"`
}

// VerifyResult is the gateway's view of a transaction.
type VerifyResult struct {
	TransactionID string `json:"mer_txnid"`
	PayStatus     string `json:"pay_status"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
}

// Successful reports whether the gateway settled the payment.
func (v VerifyResult) Successful() bool { return v.PayStatus == paySuccessful }

// Gateway opens checkout sessions and verifies transactions. The HTTP
// implementation talks to Aamarpay; tests substitute their own.
type Gateway interface {
	Initiate(ctx context.Context, req InitiateRequest) (CheckoutSession, error)
	Verify(ctx context.Context, transactionID string) (VerifyResult, error)
}

// Aamarpay implements Gateway against the Aamarpay JSON API.
type Aamarpay struct {
	cfg    Config
	client *http.Client
	log    *zap.Logger
}

// New returns a gateway client with a bounded request timeout.
func New(cfg Config, log *zap.Logger) *Aamarpay {
	return &Aamarpay{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
}

// initiateResponse is Aamarpay's jsonpost reply. result is the string
// "true" on success.
type initiateResponse struct {
	Result     string `json:"result"`
	PaymentURL string `json:"payment_url"`
}

// Initiate opens a checkout session and returns the hosted payment URL.
func (a *Aamarpay) Initiate(ctx context.Context, req InitiateRequest) (CheckoutSession, error) {
	payload := map[string]string{
		"store_id":      a.cfg.StoreID,
		"signature_key": a.cfg.SignatureKey,
		"tran_id":       req.TransactionID,
		"amount":        req.Amount,
		"currency":      req.Currency,
		"desc":          req.Description,
		"cus_name":      req.CustomerName,
		"cus_email":     req.CustomerEmail,
		"cus_phone":     req.CustomerPhone,
		"cus_add1":      req.Address,
		"success_url":   callbackURL(a.cfg.SuccessURL, req.TransactionID),
		"fail_url":      callbackURL(a.cfg.FailURL, req.TransactionID),
		"cancel_url":    callbackURL(a.cfg.CancelURL, req.TransactionID),
		"type":          "json",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return CheckoutSession{}, err
	}

	endpoint := strings.TrimRight(a.cfg.BaseURL, "/") + "/jsonpost.php"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return CheckoutSession{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("gateway initiate: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("gateway initiate: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		a.log.Warn("gateway initiate rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("transaction_id", req.TransactionID))
		return CheckoutSession{}, fmt.Errorf("gateway initiate: status %d", resp.StatusCode)
	}

	var out initiateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return CheckoutSession{}, fmt.Errorf("gateway initiate: %w", err)
	}
	if out.Result != "true" || out.PaymentURL == "" {
		return CheckoutSession{}, fmt.Errorf("gateway initiate: session not created")
	}
	return CheckoutSession{PaymentURL: out.PaymentURL}, nil
}

// Verify asks the gateway for the settled state of a transaction.
func (a *Aamarpay) Verify(ctx context.Context, transactionID string) (VerifyResult, error) {
	endpoint := strings.TrimRight(a.cfg.BaseURL, "/") + "/api/v1/trxcheck/request.php"
	q := url.Values{}
	q.Set("request_id", transactionID)
	q.Set("store_id", a.cfg.StoreID)
	q.Set("signature_key", a.cfg.SignatureKey)
	q.Set("type", "json")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return VerifyResult{}, err
	}

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("gateway verify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return VerifyResult{}, fmt.Errorf("gateway verify: status %d", resp.StatusCode)
	}

	var out VerifyResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return VerifyResult{}, fmt.Errorf("gateway verify: %w", err)
	}
	return out, nil
}

func callbackURL(base, transactionID string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "transactionId=" + url.QueryEscape(transactionID)
}

// NewTransactionID mints a globally unique transaction id for a new
// subscription checkout.
func NewTransactionID() string {
	return "TXN-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16])
}
