package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContextRecuperaElLoggerEmbebido(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("request_id", "req-123").Logger()

	ctx := WithContext(context.Background(), zl)
	FromContext(ctx).Info().Msg("procesando")

	salida := buf.String()
	require.NotEmpty(t, salida)
	assert.Contains(t, salida, `"request_id":"req-123"`)
	assert.Contains(t, salida, "procesando")
}

func TestFromContextSinLoggerNoRevienta(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log)
	// Sin logger embebido devuelve uno deshabilitado; loguear es un no-op.
	log.Info().Msg("sin contexto")
}

func TestNewRespetaElNivel(t *testing.T) {
	l := New(Config{Env: "production", Level: "warn"})
	assert.Equal(t, zerolog.WarnLevel, l.Zerolog().GetLevel())
}
