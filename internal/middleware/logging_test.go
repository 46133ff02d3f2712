package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCtxHandler_StampsRequestScopedIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&ctxHandler{slog.NewJSONHandler(&buf, nil)})

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-42")
	ctx = context.WithValue(ctx, UserIDKey, uint(7))
	ctx = context.WithValue(ctx, TraceIDKey, "trace-abc")

	logger.InfoContext(ctx, "task assigned", slog.Uint64("task_id", 12))

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "task assigned", record["msg"])
	assert.Equal(t, "req-42", record["request_id"])
	assert.Equal(t, float64(7), record["user_id"])
	assert.Equal(t, "trace-abc", record["trace_id"])
	assert.Equal(t, float64(12), record["task_id"])
}

func TestCtxHandler_PlainContextAddsNothing(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&ctxHandler{slog.NewJSONHandler(&buf, nil)})

	logger.InfoContext(context.Background(), "startup complete")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.NotContains(t, record, "request_id")
	assert.NotContains(t, record, "user_id")
}

func TestContextMiddleware_PropagatesLocals(t *testing.T) {
	app := fiber.New()

	var got struct {
		requestID string
		userID    uint
	}
	app.Get("/api/tasks",
		func(c *fiber.Ctx) error {
			c.Locals("requestid", "req-99")
			c.Locals("userID", uint(5))
			return c.Next()
		},
		ContextMiddleware(),
		func(c *fiber.Ctx) error {
			ctx := c.UserContext()
			got.requestID, _ = ctx.Value(RequestIDKey).(string)
			got.userID, _ = ctx.Value(UserIDKey).(uint)
			return c.SendStatus(fiber.StatusOK)
		})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-99", got.requestID)
	assert.Equal(t, uint(5), got.userID)
}
