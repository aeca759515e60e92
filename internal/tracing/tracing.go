// Package tracing - тонкая обертка над OpenTelemetry: спаны прогонов рецепта и отдельных наливов.
// Пока провайдер не установлен, otel отдает no-op трейсер и спаны ничего не стоят.
package tracing

import (
	"context"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/iwtcode/velvetpour"

var (
	providerOnce sync.Once
	providerErr  error
	provider     *sdktrace.TracerProvider
)

// Init устанавливает глобальный провайдер со stdout экспортером.
// Пустой outputFile означает os.Stdout. Повторные вызовы ничего не делают.
func Init(serviceName, outputFile string) error {
	var w io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.OpenFile(outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		w = f
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return err
	}
	return InitWithExporter(serviceName, exporter)
}

// InitWithExporter устанавливает провайдер с произвольным экспортером (используется в тестах).
func InitWithExporter(serviceName string, exporter sdktrace.SpanExporter) error {
	providerOnce.Do(func() {
		res, err := resource.New(context.Background(),
			resource.WithAttributes(attribute.String("service.name", serviceName)),
		)
		if err != nil {
			providerErr = err
			return
		}
		provider = sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(provider)
	})
	return providerErr
}

// Shutdown сбрасывает буферы экспортера.
func Shutdown(ctx context.Context) error {
	if provider == nil {
		return nil
	}
	return provider.Shutdown(ctx)
}

// StartSpan открывает спан с атрибутами.
func StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, trace.Span) {
	kv := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kv = append(kv, attribute.String(k, v))
	}
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(kv...))
}

// EndSpan закрывает спан, проставляя статус по ошибке.
func EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
