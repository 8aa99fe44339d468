package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	var buf bytes.Buffer
	Logger.SetOutput(&buf)
	Logger.SetFormatter(&logrus.JSONFormatter{})

	assert.NoError(t, ErrorHandler(nil, "ignored"))
	assert.Empty(t, buf.String())

	cause := errors.New("connection refused")
	err := ErrorHandler(cause, "failed to query users")

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to query users: connection refused", err.Error())
	assert.Contains(t, buf.String(), `"msg":"failed to query users"`)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteJSON(rec, map[string]any{"status": "success", "data": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"success","data":3}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, "unauthorized", http.StatusUnauthorized)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "unauthorized", body.Message)
}

func TestDebtorReminderEmail(t *testing.T) {
	lines := []ReminderLine{
		{Name: "Alice", Amount: decimal.RequireFromString("40"), Since: time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)},
		{Name: "<Bob>", Amount: decimal.RequireFromString("2.5")},
	}

	subject, body := DebtorReminderEmail("Carol", lines)

	assert.Contains(t, subject, "42.50")
	assert.Contains(t, subject, "2 balance(s)")
	assert.Contains(t, body, "Hi Carol")
	assert.Contains(t, body, "40.00")
	assert.Contains(t, body, "Mar 3, 2025")
	assert.Contains(t, body, "&lt;Bob&gt;")
	assert.False(t, strings.Contains(body, "<Bob>"))
	assert.Contains(t, body, "width: 100%;")
}

func TestMailerNewMessage(t *testing.T) {
	m := NewMailer("smtp.example.com", 587, "ledger@example.com", "pw")

	msg := m.NewMessage("bob@example.com", "Reminder", "<p>hi</p>")

	assert.Equal(t, []string{"ledger@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"bob@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Reminder"}, msg.GetHeader("Subject"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, parseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, parseLevel("warn"))
	assert.Equal(t, logrus.ErrorLevel, parseLevel("error"))
	assert.Equal(t, logrus.InfoLevel, parseLevel(""))
}
