package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

var tracerName = "github.com/unkn0wn-root/otpfield/internal/telemetry"

// Instrumenter opens one span per prompt session. Spans never carry the
// entered code, only its shape.
type Instrumenter interface {
	Start(ctx context.Context, info SessionStart) (context.Context, SessionSpan)
	Shutdown(ctx context.Context) error
}

type SessionStart struct {
	Digits int
	Style  string
	Masked bool
	Theme  string
}

type Outcome string

const (
	OutcomeSubmitted Outcome = "submitted"
	OutcomeCancelled Outcome = "cancelled"
)

type SessionResult struct {
	Outcome Outcome
	Err     error
}

type SessionSpan interface {
	// RecordEdit notes an accepted change and the resulting value length.
	RecordEdit(length int)
	// RecordSubmit notes an enter press; complete is false when the host
	// refused it for being short.
	RecordSubmit(complete bool)
	End(result SessionResult)
}

type providerOptions struct {
	exporter       sdktrace.SpanExporter
	spanProcessors []sdktrace.SpanProcessor
}

type Option func(*providerOptions)

func WithSpanProcessor(proc sdktrace.SpanProcessor) Option {
	return func(opts *providerOptions) {
		if proc != nil {
			opts.spanProcessors = append(opts.spanProcessors, proc)
		}
	}
}

func WithExporter(exp sdktrace.SpanExporter) Option {
	return func(opts *providerOptions) {
		if exp != nil {
			opts.exporter = exp
		}
	}
}

type manager struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	shutdown sync.Once
}

func New(cfg Config, opts ...Option) (Instrumenter, error) {
	builder := providerOptions{}
	for _, opt := range opts {
		opt(&builder)
	}

	if !cfg.Enabled() && builder.exporter == nil && len(builder.spanProcessors) == 0 {
		return Noop(), nil
	}

	res, err := resource.New(
		context.Background(),
		resource.WithSchemaURL(semconv.SchemaURL),
		resource.WithAttributes(buildResourceAttributes(cfg)...),
	)
	if err != nil {
		return nil, err
	}

	exporter := builder.exporter
	if exporter == nil && cfg.Enabled() {
		exporter, err = newExporter(cfg)
		if err != nil {
			return nil, err
		}
	}

	var tpOpts []sdktrace.TracerProviderOption
	tpOpts = append(tpOpts, sdktrace.WithResource(res))
	if exporter != nil {
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exporter))
	}
	for _, proc := range builder.spanProcessors {
		tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(proc))
	}

	tp := sdktrace.NewTracerProvider(tpOpts...)
	return &manager{tracer: tp.Tracer(tracerName), provider: tp}, nil
}

func (m *manager) Start(ctx context.Context, info SessionStart) (context.Context, SessionSpan) {
	ctx, span := m.tracer.Start(
		ctx,
		"otpfield.prompt",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(buildSpanAttributes(info)...),
	)
	return ctx, &sessionSpan{span: span}
}

func (m *manager) Shutdown(ctx context.Context) error {
	if m == nil || m.provider == nil {
		return nil
	}
	var shutdownErr error
	m.shutdown.Do(func() {
		shutdownErr = m.provider.Shutdown(ctx)
	})
	return shutdownErr
}

type sessionSpan struct {
	span       trace.Span
	edits      int
	submits    int
	incomplete int
}

func (s *sessionSpan) RecordEdit(length int) {
	if s == nil || s.span == nil {
		return
	}
	s.edits++
	s.span.AddEvent(
		"otpfield.edit",
		trace.WithAttributes(attribute.Int("otpfield.length", length)),
	)
}

func (s *sessionSpan) RecordSubmit(complete bool) {
	if s == nil || s.span == nil {
		return
	}
	s.submits++
	if !complete {
		s.incomplete++
	}
	s.span.AddEvent(
		"otpfield.submit",
		trace.WithAttributes(attribute.Bool("otpfield.complete", complete)),
	)
}

func (s *sessionSpan) End(result SessionResult) {
	if s == nil || s.span == nil {
		return
	}
	s.span.SetAttributes(
		attribute.Int("otpfield.edits", s.edits),
		attribute.Int("otpfield.submits", s.submits),
		attribute.Int("otpfield.submits_incomplete", s.incomplete),
	)
	if result.Outcome != "" {
		s.span.SetAttributes(attribute.String("otpfield.outcome", string(result.Outcome)))
	}

	switch {
	case result.Err != nil:
		s.span.RecordError(result.Err)
		s.span.SetStatus(codes.Error, result.Err.Error())
	case result.Outcome == OutcomeCancelled:
		s.span.SetStatus(codes.Unset, "")
	default:
		s.span.SetStatus(codes.Ok, "OK")
	}
	s.span.End()
}

func Noop() Instrumenter {
	return noopInstrumenter{}
}

type noopInstrumenter struct{}

type noopSpan struct{}

func (noopInstrumenter) Start(ctx context.Context, _ SessionStart) (context.Context, SessionSpan) {
	return ctx, noopSpan{}
}

func (noopInstrumenter) Shutdown(context.Context) error { return nil }

func (noopSpan) RecordEdit(int) {}

func (noopSpan) RecordSubmit(bool) {}

func (noopSpan) End(SessionResult) {}

func newExporter(cfg Config) (sdktrace.SpanExporter, error) {
	if !cfg.Enabled() {
		return nil, errors.New("telemetry endpoint is required")
	}

	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	clientOpts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		clientOpts = append(clientOpts, otlptracegrpc.WithInsecure())
	}
	if len(cfg.Headers) > 0 {
		clientOpts = append(clientOpts, otlptracegrpc.WithHeaders(cfg.Headers))
	}

	client := otlptracegrpc.NewClient(clientOpts...)
	return otlptrace.New(ctx, client)
}

func buildResourceAttributes(cfg Config) []attribute.KeyValue {
	name := cfg.ServiceName
	if name == "" {
		name = defaultServiceName
	}
	attrs := []attribute.KeyValue{
		semconv.ServiceName(name),
		semconv.ServiceInstanceID(uuid.NewString()),
	}
	if cfg.Version != "" {
		attrs = append(attrs, semconv.ServiceVersion(cfg.Version))
	}
	return attrs
}

func buildSpanAttributes(info SessionStart) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Int("otpfield.digits", info.Digits),
		attribute.Bool("otpfield.masked", info.Masked),
	}
	if info.Style != "" {
		attrs = append(attrs, attribute.String("otpfield.style", info.Style))
	}
	if info.Theme != "" {
		attrs = append(attrs, attribute.String("otpfield.theme", info.Theme))
	}
	return attrs
}
