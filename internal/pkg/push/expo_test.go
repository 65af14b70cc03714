package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidToken(t *testing.T) {
	assert.True(t, IsValidToken("ExponentPushToken[abc123]"))
	assert.False(t, IsValidToken("abc123"))
	assert.False(t, IsValidToken("ExponentPushToken[abc123"))
	assert.False(t, IsValidToken(""))
}

func TestSendSkipsInvalidToken(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zerolog.Nop())
	err := client.Send(context.Background(), Message{To: "not-an-expo-token", Body: "hi"})
	require.NoError(t, err)
	assert.False(t, called, "gateway should not be contacted for invalid tokens")
}

func TestSendDeliversMessage(t *testing.T) {
	var received []Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"status":"ok"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zerolog.Nop())
	msg := Message{
		To:    "ExponentPushToken[abc123]",
		Sound: "default",
		Title: "SUT Community",
		Body:  "somchai liked your post",
	}
	err := client.Send(context.Background(), msg)
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, "ExponentPushToken[abc123]", received[0].To)
	assert.Equal(t, "somchai liked your post", received[0].Body)
}

func TestSendGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"status":"error","message":"DeviceNotRegistered"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zerolog.Nop())
	err := client.Send(context.Background(), Message{To: "ExponentPushToken[gone]", Body: "hi"})
	assert.ErrorContains(t, err, "DeviceNotRegistered")
}

func TestSendGatewayStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zerolog.Nop())
	err := client.Send(context.Background(), Message{To: "ExponentPushToken[abc]", Body: "hi"})
	assert.Error(t, err)
}

func TestNewClientDefaultEndpoint(t *testing.T) {
	client := NewClient("", zerolog.Nop())
	assert.Equal(t, DefaultEndpoint, client.endpoint)
}
