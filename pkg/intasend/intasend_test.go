package intasend_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectzen/pkg/intasend"

	"github.com/stretchr/testify/assert"
)

func TestCreateCheckout(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkout/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"id":  "inv-1",
			"url": "https://sandbox.intasend.com/checkout/inv-1",
		})
	}))
	defer server.Close()

	client, err := intasend.NewClient(intasend.Config{
		APIKey:    "ISPubKey_test_abc",
		SecretKey: "ISSecretKey_test_def",
		BaseURL:   server.URL,
	})
	assert.NoError(t, err)

	url, err := client.CreateCheckout(intasend.CheckoutRequest{
		Amount:      19.99,
		Email:       "jane@x.com",
		FirstName:   "Jane",
		LastName:    "Doe",
		PhoneNumber: "",
		Reference:   "order-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "https://sandbox.intasend.com/checkout/inv-1", url)

	// The wire payload carries the public key, the order reference and the
	// defaulted currency and comment.
	assert.Equal(t, "ISPubKey_test_abc", received["public_key"])
	assert.Equal(t, "order-1", received["reference"])
	assert.Equal(t, "USD", received["currency"])
	assert.Equal(t, "Payment for products", received["comment"])
	assert.Equal(t, 19.99, received["amount"])
}

func TestCreateCheckout_ProviderRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid currency"})
	}))
	defer server.Close()

	client, err := intasend.NewClient(intasend.Config{
		APIKey:    "ISPubKey_test_abc",
		SecretKey: "ISSecretKey_test_def",
		BaseURL:   server.URL,
	})
	assert.NoError(t, err)

	url, err := client.CreateCheckout(intasend.CheckoutRequest{Amount: 1, Email: "jane@x.com"})

	assert.Error(t, err)
	assert.Empty(t, url)
	assert.Contains(t, err.Error(), "Invalid currency")
}

func TestCreateCheckout_MissingRedirectURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "inv-1"})
	}))
	defer server.Close()

	client, err := intasend.NewClient(intasend.Config{
		APIKey:    "ISPubKey_test_abc",
		SecretKey: "ISSecretKey_test_def",
		BaseURL:   server.URL,
	})
	assert.NoError(t, err)

	_, err = client.CreateCheckout(intasend.CheckoutRequest{Amount: 1, Email: "jane@x.com"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing redirect URL")
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := intasend.NewClient(intasend.Config{})
	assert.Error(t, err)

	_, err = intasend.NewClient(intasend.Config{APIKey: "ISPubKey_test_abc"})
	assert.Error(t, err)
}
