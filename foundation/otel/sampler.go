package otel

import (
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// endpointExcluder drops traces for the configured set of endpoints and
// applies the probability sampler to everything else.
type endpointExcluder struct {
	endpoints   map[string]struct{}
	probability sdktrace.Sampler
}

func newEndpointExcluder(endpoints map[string]struct{}, probability float64) endpointExcluder {
	return endpointExcluder{
		endpoints:   endpoints,
		probability: sdktrace.TraceIDRatioBased(probability),
	}
}

// ShouldSample implements the sampler interface. It prevents the specified
// endpoints from being traced.
func (ee endpointExcluder) ShouldSample(params sdktrace.SamplingParameters) sdktrace.SamplingResult {
	for _, attr := range params.Attributes {
		if attr.Key == semconv.HTTPTargetKey {
			if _, exists := ee.endpoints[attr.Value.AsString()]; exists {
				return sdktrace.SamplingResult{Decision: sdktrace.Drop}
			}
		}
	}

	return ee.probability.ShouldSample(params)
}

// Description implements the sampler interface.
func (ee endpointExcluder) Description() string {
	return fmt.Sprintf("endpointExcluder{%d endpoints}", len(ee.endpoints))
}
