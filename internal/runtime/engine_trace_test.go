package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/taskroute/internal/runtime"
	"github.com/aretw0/taskroute/internal/testutils"
	"github.com/aretw0/taskroute/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTracer(t *testing.T) (*tracetest.SpanRecorder, runtime.EngineOption) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr, runtime.WithTracer(tp.Tracer("test"))
}

func TestEngine_Spans(t *testing.T) {
	sr, opt := newTracer(t)
	gen := testutils.NewScriptedGenerator(testutils.Text(`{"agent":"calculate","input":"6*7"}`))

	_, err := runtime.NewEngine(gen, opt).Run(context.Background(), domain.NewRequestState("r", "calc", "6*7"))
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 3)

	names := []string{spans[0].Name(), spans[1].Name(), spans[2].Name()}
	assert.Equal(t, []string{"node.Manager", "node.Calculator", "route"}, names)

	root := spans[2]
	for _, child := range spans[:2] {
		assert.Equal(t, root.SpanContext().SpanID(), child.Parent().SpanID())
	}
}

func TestEngine_Spans_Error(t *testing.T) {
	sr, opt := newTracer(t)
	gen := testutils.NewScriptedGenerator()

	_, err := runtime.NewEngine(gen, opt).Run(context.Background(), domain.NewRequestState("r", "t", "i"))
	require.Error(t, err)

	for _, span := range sr.Ended() {
		assert.Equal(t, codes.Error, span.Status().Code, span.Name())
	}
}
