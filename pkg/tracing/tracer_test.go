package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/pos-backoffice/pkg/config"
)

func TestInitTracer_Disabled(t *testing.T) {
	tp, err := InitTracer("pos-test", config.TracingConfig{Enabled: false})
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, Shutdown(context.Background(), tp))
}
