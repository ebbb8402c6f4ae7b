package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TextFormatRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.LogLevel = "warn"

	logger := New(cfg, &buf)
	logger.Info("hidden")
	logger.Warn("storage corrupted", "key", "formBuilder_forms")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "formbuilder: storage corrupted")
	assert.Contains(t, out, "key=formBuilder_forms")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.LogFormat = config.LogFormatJSON

	New(cfg, &buf).Info("saved", "id", "abc")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "saved", entry["@message"])
	assert.Equal(t, "formbuilder", entry["@module"])
	assert.Equal(t, "abc", entry["id"])
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.LogLevel = "chatty"

	logger := New(cfg, &buf)
	logger.Debug("quiet")
	logger.Info("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}
