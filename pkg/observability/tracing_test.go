package observability_test

import (
	"context"
	"testing"

	"github.com/aretw0/taskroute/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

func TestSetupTracing_NoEndpoint(t *testing.T) {
	shutdown, err := observability.SetupTracing(context.Background(), observability.TracingConfig{ServiceName: "taskroute"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestResource(t *testing.T) {
	res := observability.Resource(observability.TracingConfig{ServiceName: "taskroute", Version: "1.2.3"})

	name, ok := res.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	assert.Equal(t, "taskroute", name.AsString())

	version, ok := res.Set().Value(semconv.ServiceVersionKey)
	require.True(t, ok)
	assert.Equal(t, "1.2.3", version.AsString())
}
