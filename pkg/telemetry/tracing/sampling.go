package tracing

import (
	"fmt"
	"sort"
	"strings"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Sampling strategies, as named in telemetry.tracing.sampler.
const (
	SamplerAlways = "always"
	SamplerNever  = "never"
	SamplerRatio  = "ratio"
)

// createSampler builds the head sampler for the gateway.
//
// The strategy sampler is wrapped in ParentBased, so an incoming traceparent
// with the sampled flag decides for the whole request. Server spans for
// skipPaths are dropped before that decision: load balancer and kubelet
// probes would otherwise outnumber generation traces by orders of magnitude.
func createSampler(strategy string, ratio float64, skipPaths ...string) (sdktrace.Sampler, error) {
	var base sdktrace.Sampler

	switch strategy {
	case SamplerAlways:
		base = sdktrace.AlwaysSample()
	case SamplerNever:
		base = sdktrace.NeverSample()
	case SamplerRatio:
		if ratio < 0.0 || ratio > 1.0 {
			return nil, fmt.Errorf("sample ratio must be between 0.0 and 1.0, got %f", ratio)
		}
		base = sdktrace.TraceIDRatioBased(ratio)
	default:
		return nil, fmt.Errorf("unknown sampler strategy: %s (valid: always, never, ratio)", strategy)
	}

	sampler := sdktrace.ParentBased(base)
	if len(skipPaths) == 0 {
		return sampler, nil
	}

	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}
	return &skipPathSampler{next: sampler, skip: skip}, nil
}

// skipPathSampler drops server spans whose name, "<METHOD> <path>" as set
// by Middleware, targets one of the skipped paths.
type skipPathSampler struct {
	next sdktrace.Sampler
	skip map[string]struct{}
}

func (s *skipPathSampler) ShouldSample(p sdktrace.SamplingParameters) sdktrace.SamplingResult {
	if p.Kind == trace.SpanKindServer {
		if _, path, ok := strings.Cut(p.Name, " "); ok {
			if _, skipped := s.skip[path]; skipped {
				return sdktrace.SamplingResult{
					Decision:   sdktrace.Drop,
					Tracestate: trace.SpanContextFromContext(p.ParentContext).TraceState(),
				}
			}
		}
	}
	return s.next.ShouldSample(p)
}

func (s *skipPathSampler) Description() string {
	paths := make([]string, 0, len(s.skip))
	for p := range s.skip {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return fmt.Sprintf("SkipPaths{%s}/%s", strings.Join(paths, ","), s.next.Description())
}
