package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	base := logrus.New()
	base.SetOutput(buf)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	previous := L
	L = &logger{entry: logrus.NewEntry(base)}
	t.Cleanup(func() { L = previous })

	return buf
}

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestWithFields_Development(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	buf := captureLogger(t)

	ctx, id := WithCorrelationID(context.Background())
	ForContext(ctx).WithFields(Fields{
		"query_id":   "abc123",
		"irrelevant": "descartado",
	}).Info("consulta executada")

	out := buf.String()
	assert.Contains(t, out, "correlation_id="+id)
	assert.Contains(t, out, "query_id=abc123")
	assert.NotContains(t, out, "irrelevant")
}

func TestWithFields_Production(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	buf := captureLogger(t)

	L.WithField("remote_addr", "127.0.0.1").Info("requisição")

	assert.Contains(t, buf.String(), "remote_addr=127.0.0.1")
}
