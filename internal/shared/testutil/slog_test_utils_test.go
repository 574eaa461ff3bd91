package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferedSlogHandler(t *testing.T) {
	logger, handler := NewTestLogger(t)

	logger.Info("upload accepted", slog.String("source", "HK"))
	logger.With(slog.String("component", "report_service")).Warn("missing columns")
	logger.Error("export failed")

	assert.Equal(t, 3, handler.Count())
	assert.True(t, handler.ContainsMessage("accepted"))
	assert.True(t, handler.ContainsAttr("source", "HK"))
	assert.True(t, handler.ContainsAttr("component", "report_service"), "With attrs are captured")
	assert.Len(t, handler.GetRecordsByLevel(slog.LevelWarn), 1)

	AssertLogContains(t, handler, slog.LevelInfo, "upload")
	AssertLogAttr(t, handler, "source", "HK")

	handler.Clear()
	assert.Zero(t, handler.Count())
	AssertNoErrors(t, handler)
}
