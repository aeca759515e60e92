package tracing

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSpansAreExported(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	require.NoError(t, InitWithExporter("velvetpour-test", exporter))
	t.Cleanup(func() { _ = Shutdown(context.Background()) })

	ctx, run := StartSpan(context.Background(), "dispense.run", map[string]string{"recipe": "Negroni"})
	_, pour := StartSpan(ctx, "dispense.pour", map[string]string{"pump": "1"})
	EndSpan(pour, stderrors.New("pour timeout"))
	EndSpan(run, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	require.Equal(t, "dispense.pour", spans[0].Name)
	require.Equal(t, codes.Error, spans[0].Status.Code)
	require.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID(), "налив вложен в прогон")
	require.Equal(t, codes.Ok, spans[1].Status.Code)
}

func TestEndSpanNil(t *testing.T) {
	require.NotPanics(t, func() { EndSpan(nil, nil) })
}
