package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatewayServer(t *testing.T, status int, body gatewayResp) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sendVerificationMessage", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSendVerificationMessage(t *testing.T) {
	srv := gatewayServer(t, http.StatusOK, gatewayResp{
		OK:     true,
		Result: requestStatus{RequestID: "req-123"},
	})
	c := NewGatewayClient(srv.URL, "test-token", "")

	id, err := c.SendVerificationMessage(context.Background(), "+15551234567", "123456", 300)
	require.NoError(t, err)
	assert.Equal(t, "req-123", id)
}

func TestSendVerificationMessageEmptyRequestID(t *testing.T) {
	// ok:true but no request_id means there is nothing to audit against;
	// that must surface as an error, not an empty string.
	srv := gatewayServer(t, http.StatusOK, gatewayResp{OK: true})
	c := NewGatewayClient(srv.URL, "test-token", "")

	_, err := c.SendVerificationMessage(context.Background(), "+15551234567", "123456", 300)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request_id")
}

func TestSendVerificationMessageGatewayError(t *testing.T) {
	srv := gatewayServer(t, http.StatusOK, gatewayResp{OK: false, Error: "PHONE_NUMBER_INVALID"})
	c := NewGatewayClient(srv.URL, "test-token", "")

	_, err := c.SendVerificationMessage(context.Background(), "+15551234567", "123456", 300)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PHONE_NUMBER_INVALID")
}

func TestSendVerificationMessageHTTPError(t *testing.T) {
	srv := gatewayServer(t, http.StatusBadGateway, gatewayResp{})
	c := NewGatewayClient(srv.URL, "test-token", "")

	_, err := c.SendVerificationMessage(context.Background(), "+15551234567", "123456", 300)
	require.Error(t, err)
}

func TestSendVerificationMessageNoToken(t *testing.T) {
	c := NewGatewayClient("http://unused", "", "")
	_, err := c.SendVerificationMessage(context.Background(), "+15551234567", "123456", 300)
	require.Error(t, err)
}
