package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(&buf, "warn")
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "order_id", "o-1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "o-1", record["order_id"])
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud")
	require.ErrorContains(t, err, "level[loud] is not valid")
}
