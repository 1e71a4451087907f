package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsbots/statusbot/internal/adapter/handler"
	"github.com/opsbots/statusbot/internal/infrastructure/persistence/memory"
	"github.com/opsbots/statusbot/internal/usecase/command"
	"github.com/opsbots/statusbot/internal/usecase/event"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...any) {}
func (nopLogger) Info(msg string, keysAndValues ...any)  {}
func (nopLogger) Warn(msg string, keysAndValues ...any)  {}
func (nopLogger) Error(msg string, keysAndValues ...any) {}

func setupRouterTest(t *testing.T) http.Handler {
	t.Helper()

	users := memory.NewUserRepository()
	teams := memory.NewTeamRepository(users)
	executor := command.NewExecutor(teams, users, nopLogger{})
	ingestor := event.NewIngestor(users, nil, "UBOT", "statusbot", "", nopLogger{})

	handlers := &Handlers{
		Webhook: handler.NewWebhookHandler(ingestor, "", nil, nopLogger{}),
		Command: handler.NewCommandHandler(executor, nil, nopLogger{}),
		Health:  handler.NewHealthHandler(nil),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(handlers, RouterOptions{}, logger)
}

func TestRouter(t *testing.T) {
	router := setupRouterTest(t)

	t.Run("health endpoint", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("readiness endpoint", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("webhook root accepts events", func(t *testing.T) {
		body := `{"type":"url_verification","challenge":"abc"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "abc")
	})

	t.Run("request ID header is set", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})
}
