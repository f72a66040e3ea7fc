package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cosmetitrack-api/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("verboso"))
}

func TestNew_JSONConServicioYNivel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Service: "cosmetitrack-api", Output: &buf})

	l.Info().Msg("no debe aparecer")
	l.Warn().Str("sku", "CH001").Msg("stock bajo")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var ev map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &ev))
	assert.Equal(t, "warn", ev["level"])
	assert.Equal(t, "cosmetitrack-api", ev["service"])
	assert.Equal(t, "CH001", ev["sku"])
	assert.Equal(t, "stock bajo", ev["message"])
}
