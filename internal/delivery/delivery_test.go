package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaibhavsidana/vaibhav-dev/internal/observability"
)

var testMessage = Message{Name: "Ada", Email: "ada@example.com", Message: "Hello there"}

func testEmailJSConfig(endpoint string) EmailJSConfig {
	return EmailJSConfig{
		ServiceID:  "service_test",
		TemplateID: "template_test",
		PublicKey:  "public_key",
		PrivateKey: "private_key",
		Endpoint:   endpoint,
	}
}

func TestEmailJS_Send_Delivered(t *testing.T) {
	var got emailJSRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &got))
		_, _ = io.WriteString(w, "OK")
	}))
	defer srv.Close()

	sender, err := NewEmailJS(testEmailJSConfig(srv.URL), srv.Client())
	require.NoError(t, err)

	require.NoError(t, sender.Send(context.Background(), testMessage))
	assert.Equal(t, "service_test", got.ServiceID)
	assert.Equal(t, "template_test", got.TemplateID)
	assert.Equal(t, "public_key", got.UserID)
	assert.Equal(t, "private_key", got.AccessToken)
	assert.Equal(t, map[string]string{
		"name":    "Ada",
		"email":   "ada@example.com",
		"message": "Hello there",
	}, got.TemplateParams)
}

func TestEmailJS_Send_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "The Public Key is invalid\n")
	}))
	defer srv.Close()

	sender, err := NewEmailJS(testEmailJSConfig(srv.URL), srv.Client())
	require.NoError(t, err)

	err = sender.Send(context.Background(), testMessage)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDeliveryFailed)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "The Public Key is invalid")
}

func TestEmailJS_Send_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	sender, err := NewEmailJS(testEmailJSConfig(url), nil)
	require.NoError(t, err)

	err = sender.Send(context.Background(), testMessage)
	assert.ErrorIs(t, err, ErrDeliveryFailed)
}

func TestEmailJS_Send_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))
	defer srv.Close()

	sender, err := NewEmailJS(testEmailJSConfig(srv.URL), srv.Client())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = sender.Send(ctx, testMessage)
	assert.ErrorIs(t, err, ErrDeliveryFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewEmailJS_MissingIdentifiers(t *testing.T) {
	_, err := NewEmailJS(EmailJSConfig{ServiceID: "s"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Contains(t, err.Error(), "template id")
	assert.Contains(t, err.Error(), "public key")
}

func TestNewEmailJS_DefaultEndpoint(t *testing.T) {
	cfg := testEmailJSConfig("")
	sender, err := NewEmailJS(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultEmailJSEndpoint, sender.cfg.Endpoint)
}

func TestSMTP_Send(t *testing.T) {
	sender, err := NewSMTP(SMTPConfig{User: "me@example.com", Pass: "secret", To: "inbox@example.com"})
	require.NoError(t, err)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	sender.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	require.NoError(t, sender.Send(context.Background(), testMessage))
	assert.Equal(t, "smtp.gmail.com:587", gotAddr)
	assert.Equal(t, "me@example.com", gotFrom)
	assert.Equal(t, []string{"inbox@example.com"}, gotTo)

	raw := string(gotMsg)
	assert.True(t, strings.HasPrefix(raw, "To: inbox@example.com\r\n"))
	assert.Contains(t, raw, "Subject: Portfolio Contact: Ada\r\n")
	assert.Contains(t, raw, "Reply-To: ada@example.com\r\n")
	assert.Contains(t, raw, "Hello there")
}

func TestSMTP_Send_Failure(t *testing.T) {
	sender, err := NewSMTP(SMTPConfig{User: "me@example.com", Pass: "secret"})
	require.NoError(t, err)
	sender.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("535 authentication failed")
	}

	err = sender.Send(context.Background(), testMessage)
	assert.ErrorIs(t, err, ErrDeliveryFailed)
	assert.Contains(t, err.Error(), "535")
}

func TestNewSMTP_MissingCredentials(t *testing.T) {
	_, err := NewSMTP(SMTPConfig{User: "me@example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestLog_Send(t *testing.T) {
	logger := observability.Discard()

	assert.NoError(t, NewLog(logger, false).Send(context.Background(), testMessage))
	assert.ErrorIs(t, NewLog(logger, true).Send(context.Background(), testMessage), ErrDeliveryFailed)
}
