package common_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brachisto/brachisto-go/internal/application/common"
)

func TestStdLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := common.NewStdLoggerTo(&buf, "warn", "text")

	logger.Log("debug", "noise", nil)
	logger.Log("info", "more noise", nil)
	assert.Empty(t, buf.String())

	logger.Log("error", "something broke", nil)
	assert.Contains(t, buf.String(), "error: something broke")
}

func TestStdLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := common.NewStdLoggerTo(&buf, "debug", "json")

	logger.Log("info", "request handled", map[string]interface{}{"duration_ms": 12})

	line := buf.Bytes()
	start := bytes.IndexByte(line, '{')
	require.GreaterOrEqual(t, start, 0)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(line[start:], &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "request handled", entry["message"])
	assert.Equal(t, 12.0, entry["duration_ms"])
}

func TestStdLogger_TextMetadata(t *testing.T) {
	var buf bytes.Buffer
	logger := common.NewStdLoggerTo(&buf, "debug", "text")

	logger.Log("warn", "slow tick", map[string]interface{}{"duration_ms": 900})

	assert.Contains(t, buf.String(), "warn: slow tick")
	assert.Contains(t, buf.String(), "duration_ms")
}
