package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsbots/statusbot/internal/infrastructure/persistence/memory"
	"github.com/opsbots/statusbot/internal/usecase/command"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...any) {}
func (nopLogger) Info(msg string, keysAndValues ...any)  {}
func (nopLogger) Warn(msg string, keysAndValues ...any)  {}
func (nopLogger) Error(msg string, keysAndValues ...any) {}

func setupCommandTest(t *testing.T) *CommandHandler {
	t.Helper()

	users := memory.NewUserRepository()
	teams := memory.NewTeamRepository(users)
	executor := command.NewExecutor(teams, users, nopLogger{})

	return NewCommandHandler(executor, nil, nopLogger{})
}

// postCommand submits a form-encoded slash command the way Slack does.
func postCommand(t *testing.T, h *CommandHandler, text string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{}
	form.Set("command", "/location")
	form.Set("text", text)
	form.Set("user_id", "U123")
	form.Set("channel_id", "C42")

	req := httptest.NewRequest(http.MethodPost, "/location", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeBlocks decodes the response body into its raw block list.
func decodeBlocks(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()

	var body struct {
		Blocks []map[string]any `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Blocks
}

func TestCommandHandler_ServeHTTP(t *testing.T) {
	t.Run("rejects non-POST", func(t *testing.T) {
		h := setupCommandTest(t)

		req := httptest.NewRequest(http.MethodGet, "/location", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("create then show team", func(t *testing.T) {
		h := setupCommandTest(t)

		rec := postCommand(t, h, "team create Eng")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		blocks := decodeBlocks(t, rec)
		require.Len(t, blocks, 1)
		assert.Equal(t, "section", blocks[0]["type"])

		rec = postCommand(t, h, "Eng")
		assert.Equal(t, http.StatusOK, rec.Code)

		blocks = decodeBlocks(t, rec)
		require.Len(t, blocks, 2)
		assert.Equal(t, "header", blocks[0]["type"])
		header := blocks[0]["text"].(map[string]any)
		assert.Equal(t, "Eng Status", header["text"])
		assert.Equal(t, "divider", blocks[1]["type"])
	})

	t.Run("invalid command still answers 200 with blocks", func(t *testing.T) {
		h := setupCommandTest(t)

		rec := postCommand(t, h, "team")
		assert.Equal(t, http.StatusOK, rec.Code)

		blocks := decodeBlocks(t, rec)
		require.Len(t, blocks, 3)
		header := blocks[0]["text"].(map[string]any)
		assert.Equal(t, "Invalid command", header["text"])
	})

	t.Run("empty text still answers 200 with blocks", func(t *testing.T) {
		h := setupCommandTest(t)

		rec := postCommand(t, h, "")
		assert.Equal(t, http.StatusOK, rec.Code)

		blocks := decodeBlocks(t, rec)
		require.Len(t, blocks, 3)
	})

	t.Run("unparseable body answers bare 200", func(t *testing.T) {
		h := setupCommandTest(t)

		req := httptest.NewRequest(http.MethodPost, "/location", strings.NewReader("%zz"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}
