package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsbots/statusbot/internal/infrastructure/persistence/memory"
	"github.com/opsbots/statusbot/internal/usecase/event"
)

func setupWebhookTest(t *testing.T, verificationToken string) (*WebhookHandler, *memory.UserRepository) {
	t.Helper()

	users := memory.NewUserRepository()
	ingestor := event.NewIngestor(users, nil, "UBOT", "statusbot", "", nopLogger{})

	return NewWebhookHandler(ingestor, verificationToken, nil, nopLogger{}), users
}

func postWebhook(t *testing.T, h *WebhookHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestWebhookHandler_URLVerification(t *testing.T) {
	t.Run("echoes the challenge", func(t *testing.T) {
		h, _ := setupWebhookTest(t, "")

		rec := postWebhook(t, h, `{"type":"url_verification","challenge":"ch4ll3nge","token":"tok"}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ch4ll3nge", resp["challenge"])
	})

	t.Run("checks the verification token when configured", func(t *testing.T) {
		h, _ := setupWebhookTest(t, "expected")

		rec := postWebhook(t, h, `{"type":"url_verification","challenge":"ch4ll3nge","token":"wrong"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = postWebhook(t, h, `{"type":"url_verification","challenge":"ch4ll3nge","token":"expected"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestWebhookHandler_EventCallback(t *testing.T) {
	t.Run("app_mention stores status", func(t *testing.T) {
		h, users := setupWebhookTest(t, "")

		rec := postWebhook(t, h, `{
			"type": "event_callback",
			"event_id": "Ev1",
			"event": {
				"type": "app_mention",
				"user": "U123",
				"channel": "C42",
				"text": "<@UBOT> telework",
				"event_ts": "1700000000.000100"
			}
		}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		user, err := users.FindByID(context.Background(), "U123")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "telework", user.Status)
	})

	t.Run("message stores status verbatim", func(t *testing.T) {
		h, users := setupWebhookTest(t, "")

		rec := postWebhook(t, h, `{
			"type": "event_callback",
			"event_id": "Ev2",
			"event": {
				"type": "message",
				"user": "U456",
				"channel": "C42",
				"text": "out sick",
				"event_ts": "1700000000.000200"
			}
		}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		user, err := users.FindByID(context.Background(), "U456")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "out sick", user.Status)
	})

	t.Run("unhandled inner event type is acknowledged", func(t *testing.T) {
		h, _ := setupWebhookTest(t, "")

		rec := postWebhook(t, h, `{
			"type": "event_callback",
			"event": {"type": "reaction_added"}
		}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestWebhookHandler_UnknownBodies(t *testing.T) {
	t.Run("unknown type answers bare 200", func(t *testing.T) {
		h, _ := setupWebhookTest(t, "")

		rec := postWebhook(t, h, `{"type":"app_rate_limited"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("undecodable body answers bare 200", func(t *testing.T) {
		h, _ := setupWebhookTest(t, "")

		rec := postWebhook(t, h, `{not json`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects non-POST", func(t *testing.T) {
		h, _ := setupWebhookTest(t, "")

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
