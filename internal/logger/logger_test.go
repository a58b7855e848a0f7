package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRejectsUnknownLevel(t *testing.T) {
	err := Setup(LogConfig{Level: "loud", Format: "json", Output: "stdout"})
	assert.Error(t, err)
}

func TestSetupWritesJSONToFile(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})

	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, Setup(LogConfig{Level: "debug", Format: "json", Output: path}))

	l := WithComponent("render")
	l.Debug().Str("file_name", "INV-00001_A.pdf").Msg("Invoice rendered")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "render", entry["component"])
	assert.Equal(t, "INV-00001_A.pdf", entry["file_name"])
	assert.Equal(t, "debug", entry["level"])
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&buf)

	l := WithRequestID("req-1")
	l.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
}
