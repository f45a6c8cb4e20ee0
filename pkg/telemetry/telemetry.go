// Package telemetry turns on OpenTelemetry tracing for the parse
// engine. The engine emits one span per report parse; this package
// installs the global TracerProvider those spans go to.
//
// Everything is driven by environment variables:
//
//	OTEL_ENABLED                  - enable tracing (default: false)
//	OTEL_SERVICE_NAME             - service name (default: coverage-analyzer)
//	OTEL_SERVICE_VERSION          - service version (default: unknown)
//	OTEL_EXPORTER_OTLP_ENDPOINT   - OTLP collector endpoint
//	OTEL_EXPORTER_OTLP_PROTOCOL   - grpc or http/protobuf (default: grpc)
//	OTEL_EXPORTER_OTLP_INSECURE   - plaintext connection (default: false)
//	OTEL_TRACES_SAMPLER_ARG       - parse-span sample ratio (default: 1.0)
//
// When tracing is disabled the default no-op provider stays in place,
// so the engine's span calls cost nothing.
package telemetry

import (
	"context"
	"os"
	"strconv"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// Config is the tracing setup read from the environment.
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string

	// Endpoint is the OTLP collector address. Protocol selects the
	// exporter wire format, grpc or http/protobuf.
	Endpoint string
	Protocol string
	Insecure bool

	// SampleRatio is the fraction of parse traces kept, clamped to
	// [0, 1]. Sampling is parent-based so spans joining a sampled
	// trace are always recorded.
	SampleRatio float64
}

// FromEnv reads the tracing configuration from OTEL_* variables.
func FromEnv() Config {
	return Config{
		Enabled:        envBool("OTEL_ENABLED"),
		ServiceName:    envOr("OTEL_SERVICE_NAME", "coverage-analyzer"),
		ServiceVersion: envOr("OTEL_SERVICE_VERSION", "unknown"),
		Endpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		Protocol:       envOr("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
		Insecure:       envBool("OTEL_EXPORTER_OTLP_INSECURE"),
		SampleRatio:    envRatio("OTEL_TRACES_SAMPLER_ARG"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	return strings.EqualFold(os.Getenv(key), "true")
}

// envRatio parses a sample ratio, clamped to [0, 1]. Unset or
// unparsable values keep every trace.
func envRatio(key string) float64 {
	s := os.Getenv(key)
	if s == "" {
		return 1.0
	}
	r, err := strconv.ParseFloat(s, 64)
	if err != nil || r > 1 {
		return 1.0
	}
	if r < 0 {
		return 0
	}
	return r
}

var (
	loadedConfig Config
	loadOnce     sync.Once
)

func loadConfig() Config {
	loadOnce.Do(func() {
		loadedConfig = FromEnv()
	})
	return loadedConfig
}

// ShutdownFunc flushes and stops the TracerProvider.
type ShutdownFunc func(ctx context.Context) error

func noopShutdown(context.Context) error { return nil }

// Init installs the global TracerProvider according to the
// environment. With OTEL_ENABLED unset it returns a no-op shutdown
// and leaves the default no-op provider in place. Repeated calls
// reuse the configuration read by the first.
func Init(ctx context.Context) (ShutdownFunc, error) {
	cfg := loadConfig()
	if !cfg.Enabled {
		return noopShutdown, nil
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return noopShutdown, err
	}

	attrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
	}
	// Spans get tied back to the machine that parsed the report.
	if host, err := os.Hostname(); err == nil {
		attrs = append(attrs, semconv.HostName(host))
	}
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, attrs...),
	)
	if err != nil {
		return noopShutdown, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

// Enabled reports whether tracing is turned on in the environment.
// Consumers that carry optional instrumentation, such as the run
// history database, use this to skip their tracing hooks.
func Enabled() bool {
	return loadConfig().Enabled
}
