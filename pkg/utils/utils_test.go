package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("employee@test.tld"))
	assert.NoError(t, ValidateEmail("first.last+bills@billed.fr"))
	assert.Error(t, ValidateEmail("a@a"))
	assert.Error(t, ValidateEmail("not-an-email"))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(348))
	assert.Error(t, ValidateAmount(0))
	assert.Error(t, ValidateAmount(-1))
	assert.Error(t, ValidateAmount(100001))
}

func TestValidatePct(t *testing.T) {
	assert.NoError(t, ValidatePct(0))
	assert.NoError(t, ValidatePct(20))
	assert.Error(t, ValidatePct(101))
	assert.Error(t, ValidatePct(-5))
}

func TestValidateDate(t *testing.T) {
	assert.NoError(t, ValidateDate("2004-04-04"))
	assert.Error(t, ValidateDate("04/04/2004"))
	assert.Error(t, ValidateDate("2004-13-01"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "séminaire billed", SanitizeString("séminaire\x00 billed\x7f"))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggerConfig{Level: "debug", OutputPath: "stderr", Format: "console"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = NewLogger(LoggerConfig{Level: "bogus", Format: "json"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
}

func TestServiceLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := NewServiceLogger(zap.New(core))

	logger.Info("Bills fetched", "email", "a@a", "count", 4)
	logger.Warn("Keeping unformatted bill date", "date", "not-a-date")
	logger.Error("Failed to list bills", "error", "Erreur 500")

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, "Bills fetched", entries[0].Message)
	assert.Equal(t, map[string]interface{}{"email": "a@a", "count": int64(4)}, entries[0].ContextMap())
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
}
