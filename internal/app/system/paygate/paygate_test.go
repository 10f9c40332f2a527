package paygate_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/paygate"
)

func testConfig(baseURL string) paygate.Config {
	return paygate.Config{
		BaseURL:      baseURL,
		StoreID:      "teststore",
		SignatureKey: "sig",
		SuccessURL:   "https://app.example.com/payments/confirm",
		FailURL:      "https://app.example.com/payments/fail",
		CancelURL:    "https://app.example.com/payments/cancel",
	}
}

func TestInitiate(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jsonpost.php" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"result":      "true",
			"payment_url": "https://pay.example.com/session/abc",
		})
	}))
	defer srv.Close()

	gw := paygate.New(testConfig(srv.URL), zap.NewNop())
	session, err := gw.Initiate(context.Background(), paygate.InitiateRequest{
		TransactionID: "TXN-1",
		Amount:        "999.00",
		Currency:      "BDT",
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if session.PaymentURL != "https://pay.example.com/session/abc" {
		t.Errorf("payment url = %q", session.PaymentURL)
	}

	if got["store_id"] != "teststore" || got["tran_id"] != "TXN-1" {
		t.Errorf("request payload = %#v", got)
	}
	if !strings.Contains(got["success_url"], "transactionId=TXN-1") {
		t.Errorf("success_url = %q, want transaction id appended", got["success_url"])
	}
}

func TestInitiate_SessionNotCreated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"result": "false"})
	}))
	defer srv.Close()

	gw := paygate.New(testConfig(srv.URL), zap.NewNop())
	if _, err := gw.Initiate(context.Background(), paygate.InitiateRequest{TransactionID: "TXN-2"}); err == nil {
		t.Fatal("expected error when gateway declines the session")
	}
}

func TestVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/trxcheck/request.php" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("request_id") != "TXN-3" {
			t.Errorf("request_id = %q", r.URL.Query().Get("request_id"))
		}
		json.NewEncoder(w).Encode(map[string]string{
			"mer_txnid":  "TXN-3",
			"pay_status": "Successful",
			"amount":     "999.00",
			"currency":   "BDT",
		})
	}))
	defer srv.Close()

	gw := paygate.New(testConfig(srv.URL), zap.NewNop())
	result, err := gw.Verify(context.Background(), "TXN-3")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !result.Successful() {
		t.Errorf("Successful() = false, pay_status = %q", result.PayStatus)
	}
}

func TestVerify_Unsettled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"mer_txnid": "TXN-4", "pay_status": "Failed"})
	}))
	defer srv.Close()

	gw := paygate.New(testConfig(srv.URL), zap.NewNop())
	result, err := gw.Verify(context.Background(), "TXN-4")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if result.Successful() {
		t.Error("Successful() = true for failed payment")
	}
}

func TestNewTransactionID(t *testing.T) {
	a, b := paygate.NewTransactionID(), paygate.NewTransactionID()
	if a == b {
		t.Error("transaction ids must be unique")
	}
	if !strings.HasPrefix(a, "TXN-") {
		t.Errorf("id = %q, want TXN- prefix", a)
	}
}
